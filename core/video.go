package core

// FrameBuffer is a fixed-size frame in a host pixel format.
type FrameBuffer struct {
	Format PixelFormat
	Width  int
	Height int
	Pitch  int // bytes per row
	Pixels []byte
}

// NewFrameBuffer allocates a zeroed frame.
func NewFrameBuffer(format PixelFormat, width, height int) *FrameBuffer {
	pitch := width * format.BytesPerPixel()
	return &FrameBuffer{
		Format: format,
		Width:  width,
		Height: height,
		Pitch:  pitch,
		Pixels: make([]byte, pitch*height),
	}
}

// Blitter converts the engine's RGB screen into the frame buffer.
type Blitter struct {
	frame *FrameBuffer
}

// NewBlitter returns a blitter that writes into frame.
func NewBlitter(frame *FrameBuffer) *Blitter {
	return &Blitter{frame: frame}
}

// Blit converts the whole screen and uploads the frame.
func (b *Blitter) Blit(e Engine, out VideoSink) {
	f := b.frame
	src := e.Screen()

	for y := 0; y < f.Height; y++ {
		row := f.Pixels[y*f.Pitch:]
		in := src[y*f.Width*3:]
		switch f.Format {
		case PixelFormatRGB565:
			for x := 0; x < f.Width; x++ {
				r, g, bl := in[x*3], in[x*3+1], in[x*3+2]
				v := uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(bl>>3)
				row[x*2] = uint8(v)
				row[x*2+1] = uint8(v >> 8)
			}
		default:
			for x := 0; x < f.Width; x++ {
				row[x*4] = in[x*3+2]
				row[x*4+1] = in[x*3+1]
				row[x*4+2] = in[x*3]
				row[x*4+3] = 0
			}
		}
	}

	out.UploadVideoFrame(RenderSoftware, f)
}
