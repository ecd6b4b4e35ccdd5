package display

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/zeozeozeo/psxbus/emulator"
)

// Largest number of indices in a single DrawTriangles call, rounded down
// to whole triangles
const maxBatchVertices = 65535 - 65535%3

var emptyImage = ebiten.NewImage(2, 2)

func init() {
	emptyImage.Fill(color.RGBA{255, 255, 255, 255})
}

// An Ebitengine renderer for the GPU draw data
type Renderer struct {
	Gpu *emulator.GPU

	vertices []ebiten.Vertex
	indices  []uint16
}

// Returns a new Ebitengine renderer
func NewRenderer(gpu *emulator.GPU) *Renderer {
	return &Renderer{Gpu: gpu}
}

// Draws the primitives pushed by the GPU since the last call and clears
// the draw data
func (renderer *Renderer) Draw(screen *ebiten.Image) {
	drawData := renderer.Gpu.DrawData
	xOffset := renderer.Gpu.DrawingXOffset
	yOffset := renderer.Gpu.DrawingYOffset

	for start := 0; start < len(drawData.VtxBuffer); start += maxBatchVertices {
		end := start + maxBatchVertices
		if end > len(drawData.VtxBuffer) {
			end = len(drawData.VtxBuffer)
		}
		batch := drawData.VtxBuffer[start:end]

		renderer.vertices = renderer.vertices[:0]
		renderer.indices = renderer.indices[:0]
		for idx, vtx := range batch {
			renderer.vertices = append(renderer.vertices, ebiten.Vertex{
				DstX:   float32(vtx.Position.X + xOffset),
				DstY:   float32(vtx.Position.Y + yOffset),
				SrcX:   1,
				SrcY:   1,
				ColorR: float32(vtx.Color.R) / 255,
				ColorG: float32(vtx.Color.G) / 255,
				ColorB: float32(vtx.Color.B) / 255,
				ColorA: 1,
			})
			renderer.indices = append(renderer.indices, uint16(idx))
		}

		screen.DrawTriangles(renderer.vertices, renderer.indices, emptyImage, &ebiten.DrawTrianglesOptions{})
	}

	drawData.Clear()
}
