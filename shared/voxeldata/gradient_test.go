package voxeldata

import (
	"testing"

	"VoxelVision/shared/util"
)

// fillPlane preenche o domínio com halo com um chão sólido abaixo de height.
func fillPlane(acc *TileAccessor, height int32) {
	dims := acc.Dims()
	for x := int32(-1); x < dims.VoxelLengthWithHalo-1; x++ {
		for y := int32(-1); y < dims.VoxelLengthWithHalo-1; y++ {
			for z := int32(-1); z < dims.VoxelLengthWithHalo-1; z++ {
				s := MinSample()
				if y < height {
					s = MaxSample()
				}
				acc.SetVoxel(util.NewVoxelCoord(x, y, z), s)
			}
		}
	}
	acc.SetNonEmptyCount(acc.CountNonEmptyInSurface())
}

func TestSurfaceNormalPointsUpForFloor(t *testing.T) {
	acc := NewTileAccessor(8)
	fillPlane(acc, 4)

	// Células na transição ar/sólido, inclusive nas bordas do tile: o halo
	// garante vizinhos válidos para as diferenças centrais
	positions := []util.VoxelCoord{
		{X: 4, Y: 4, Z: 4},
		{X: 0, Y: 4, Z: 0},
		{X: 8, Y: 4, Z: 8},
	}

	for _, pos := range positions {
		n := acc.SurfaceNormal(pos)
		if n.Y() <= 0 {
			t.Errorf("SurfaceNormal(%v).Y = %f, quer > 0 (normal do chão aponta para cima)", pos, n.Y())
		}
		if n.X() != 0 || n.Z() != 0 {
			t.Errorf("SurfaceNormal(%v) = %v, quer componente apenas em Y", pos, n)
		}
	}
}

func TestGradientZeroInsideSolid(t *testing.T) {
	acc := NewTileAccessor(8)
	fillPlane(acc, 7)

	g := acc.Gradient(util.NewVoxelCoord(3, 1, 3))
	if g.Len() != 0 {
		t.Errorf("Gradient em região homogênea = %v, quer vetor nulo", g)
	}

	if n := acc.SurfaceNormal(util.NewVoxelCoord(3, 1, 3)); n.Len() != 0 {
		t.Errorf("SurfaceNormal em região homogênea = %v, quer vetor nulo", n)
	}
}

func TestGradientOutsideSurfacePanics(t *testing.T) {
	acc := NewTileAccessor(4)
	mustPanic(t, "Gradient no halo", func() {
		acc.Gradient(util.NewVoxelCoord(-1, 0, 0))
	})
}
