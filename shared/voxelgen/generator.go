package voxelgen

import (
	"math"

	"VoxelVision/shared/util"
	"VoxelVision/shared/voxeldata"
)

// DensitySource fornece a densidade do mundo em uma posição contínua.
// Convenção de sinal: >= 0 dentro (ou sobre) a superfície, < 0 fora.
// A unidade é "voxels até a superfície" (distância com sinal aproximada).
type DensitySource interface {
	Density(x, y, z float64) float64
}

// PlaneSource é um chão plano na altura Height (mundo em voxels).
type PlaneSource struct {
	Height float64
}

func (p PlaneSource) Density(x, y, z float64) float64 {
	return p.Height - y
}

// SphereSource é uma esfera sólida, útil em testes: a normal esperada em
// qualquer ponto da casca é conhecida analiticamente.
type SphereSource struct {
	CenterX, CenterY, CenterZ float64
	Radius                    float64
}

func (s SphereSource) Density(x, y, z float64) float64 {
	dx := x - s.CenterX
	dy := y - s.CenterY
	dz := z - s.CenterZ
	return s.Radius - math.Sqrt(dx*dx+dy*dy+dz*dz)
}

// NoiseSource é um terreno de heightmap: fBm desloca a altura da superfície.
type NoiseSource struct {
	Seed         uint32
	SurfaceLevel float64 // Altura base (em voxels)
	Amplitude    float64 // Deslocamento vertical máximo
	Frequency    float64 // Frequência base do fBm
	Octaves      int
}

func (n NoiseSource) Density(x, y, z float64) float64 {
	octaves := n.Octaves
	if octaves < 1 {
		octaves = 1
	}
	height := n.SurfaceLevel + n.Amplitude*Fbm3(n.Seed, x, 0, z, octaves, n.Frequency, 2.0, 0.5)
	return height - y
}

// densityScale converte "voxels até a superfície" no escalar int8 da amostra.
// Uma célula de distância já satura o intervalo, mantendo o gradiente útil
// apenas perto da superfície (que é onde o marching cubes interpola).
const densityScale = 64.0

// DensityToSample converte uma densidade contínua em amostra, com a convenção
// de sinal exigida pela contagem de não-vazios (>= 0 ⇒ não-vazio).
func DensityToSample(d float64) voxeldata.Sample {
	v := util.Clamp(d*densityScale, float64(voxeldata.InterpolationMin), float64(voxeldata.InterpolationMax))
	return voxeldata.NewSample(int8(v))
}

// Generator varre o domínio com halo de um tile e preenche o accessor a
// partir de uma fonte de densidade.
type Generator struct {
	Source DensitySource
}

// NewGenerator cria um gerador sobre a fonte informada.
func NewGenerator(source DensitySource) *Generator {
	return &Generator{Source: source}
}

// FillTile preenche todo o domínio com halo [-1, VoxelLengthWithHalo-2]³ do
// accessor pelo caminho de escrita em massa (VoxelArray) e reconcilia o
// contador de não-vazios com uma varredura exata ao final. tileOrigin é a
// coordenada do tile na grade de tiles (não em voxels).
func (g *Generator) FillTile(acc *voxeldata.TileAccessor, tileOrigin util.VoxelCoord) {
	dims := acc.Dims()
	voxels := acc.VoxelArray()
	base := tileOrigin.Scale(dims.VoxelLength)

	for x := int32(-1); x < dims.VoxelLengthWithHalo-1; x++ {
		for y := int32(-1); y < dims.VoxelLengthWithHalo-1; y++ {
			for z := int32(-1); z < dims.VoxelLengthWithHalo-1; z++ {
				pos := util.NewVoxelCoord(x, y, z)
				d := g.Source.Density(
					float64(base.X+x),
					float64(base.Y+y),
					float64(base.Z+z),
				)
				voxels[dims.VoxelIndex(pos)] = DensityToSample(d)
			}
		}
	}

	acc.SetNonEmptyCount(acc.CountNonEmptyInSurface())
}
