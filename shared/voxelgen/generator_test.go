package voxelgen

import (
	"testing"

	"VoxelVision/shared/util"
	"VoxelVision/shared/voxeldata"
)

func TestDensityToSampleSignConvention(t *testing.T) {
	tests := []struct {
		density  float64
		nonEmpty bool
	}{
		{10.0, true},
		{0.0, true},
		{0.001, true},
		{-0.1, false},
		{-50.0, false},
	}

	for _, tt := range tests {
		s := DensityToSample(tt.density)
		if s.NonEmpty() != tt.nonEmpty {
			t.Errorf("DensityToSample(%f).NonEmpty() = %v, want %v", tt.density, s.NonEmpty(), tt.nonEmpty)
		}
	}

	if got := DensityToSample(1000); got != voxeldata.MaxSample() {
		t.Errorf("DensityToSample(1000) = %v, quer saturar em MaxSample", got)
	}
	if got := DensityToSample(-1000); got != voxeldata.MinSample() {
		t.Errorf("DensityToSample(-1000) = %v, quer saturar em MinSample", got)
	}
}

func TestValueNoiseDeterministicAndBounded(t *testing.T) {
	for i := 0; i < 200; i++ {
		x := float64(i) * 0.37
		y := float64(i) * 0.61
		z := float64(i) * 0.17

		a := ValueNoise3(42, x, y, z)
		b := ValueNoise3(42, x, y, z)
		if a != b {
			t.Fatalf("ValueNoise3 não determinístico em (%f, %f, %f)", x, y, z)
		}
		if a < -1.0 || a > 1.0 {
			t.Fatalf("ValueNoise3(%f, %f, %f) = %f fora de [-1, 1]", x, y, z, a)
		}
	}
}

func TestFbmBounded(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := Fbm3(7, float64(i)*1.3, 0, float64(i)*0.7, 4, 0.05, 2.0, 0.5)
		if v < -1.0 || v > 1.0 {
			t.Fatalf("Fbm3 = %f fora de [-1, 1]", v)
		}
	}
}

func TestFillTilePlane(t *testing.T) {
	gen := NewGenerator(PlaneSource{Height: 4})
	acc := voxeldata.NewTileAccessor(8)
	gen.FillTile(acc, util.NewVoxelCoord(0, 0, 0))

	dims := acc.Dims()

	// Contador reconciliado com exatidão: camadas y = 0..4 da superfície
	wantCount := dims.VoxelLengthSurface * dims.VoxelLengthSurface * 5
	if got := acc.NonEmptyCount(); got != wantCount {
		t.Errorf("NonEmptyCount = %d, quer %d", got, wantCount)
	}
	if acc.IsEmpty() || acc.IsFull() {
		t.Errorf("tile de chão plano: IsEmpty = %v, IsFull = %v", acc.IsEmpty(), acc.IsFull())
	}

	if s := acc.GetVoxel(util.NewVoxelCoord(3, 0, 3)); !s.NonEmpty() {
		t.Error("voxel abaixo do chão veio vazio")
	}
	if s := acc.GetVoxel(util.NewVoxelCoord(3, 8, 3)); s.NonEmpty() {
		t.Error("voxel acima do chão veio não-vazio")
	}
}

func TestFillTileClassifiesExtremes(t *testing.T) {
	airOnly := NewGenerator(PlaneSource{Height: -100})
	acc := voxeldata.NewTileAccessor(4)
	airOnly.FillTile(acc, util.NewVoxelCoord(0, 0, 0))
	if !acc.IsEmpty() {
		t.Error("tile de puro ar com IsEmpty = false")
	}

	solid := NewGenerator(PlaneSource{Height: 1000})
	acc = voxeldata.NewTileAccessor(4)
	solid.FillTile(acc, util.NewVoxelCoord(0, 0, 0))
	if !acc.IsFull() {
		t.Error("tile totalmente sólido com IsFull = false")
	}
}

// Tiles vizinhos amostram o mundo em coordenadas absolutas: os voxels
// compartilhados na borda (com halo) têm que coincidir, senão a superfície
// racha na fronteira entre tiles.
func TestNeighborTilesAgreeOnSharedBoundary(t *testing.T) {
	source := NoiseSource{Seed: 42, SurfaceLevel: 6, Amplitude: 4, Frequency: 0.1, Octaves: 3}
	gen := NewGenerator(source)

	left := voxeldata.NewTileAccessor(4)
	right := voxeldata.NewTileAccessor(4)
	gen.FillTile(left, util.NewVoxelCoord(0, 0, 0))
	gen.FillTile(right, util.NewVoxelCoord(1, 0, 0))

	n := left.Dims().VoxelLength
	for y := int32(-1); y < left.Dims().VoxelLengthWithHalo-1; y++ {
		for z := int32(-1); z < left.Dims().VoxelLengthWithHalo-1; z++ {
			a := left.GetVoxel(util.NewVoxelCoord(n, y, z))
			b := right.GetVoxel(util.NewVoxelCoord(0, y, z))
			if a != b {
				t.Fatalf("borda divergente em y=%d z=%d: %v != %v", y, z, a, b)
			}
		}
	}
}

func TestSphereSourceSymmetry(t *testing.T) {
	s := SphereSource{CenterX: 8, CenterY: 8, CenterZ: 8, Radius: 5}

	if d := s.Density(8, 8, 8); d != 5 {
		t.Errorf("Density no centro = %f, quer 5", d)
	}
	if d := s.Density(8, 13, 8); d != 0 {
		t.Errorf("Density na casca = %f, quer 0", d)
	}
	if d := s.Density(8, 20, 8); d >= 0 {
		t.Errorf("Density fora da esfera = %f, quer negativa", d)
	}
}
