package voxeldata

import (
	"github.com/go-gl/mathgl/mgl32"

	"VoxelVision/shared/util"
)

// Gradient calcula o gradiente de densidade em uma célula da região de
// superfície por diferenças centrais, usando os vizinhos do halo. É para isso
// que o halo existe: nas bordas do tile os vizinhos ±1 ainda estão no array.
// Válido para pos em [0, VoxelLengthSurface) por eixo.
func (a *TileAccessor) Gradient(pos util.VoxelCoord) mgl32.Vec3 {
	if !pos.InRange(0, a.dims.VoxelLengthSurface) {
		panic("voxeldata: gradiente fora da região de superfície")
	}

	dx := int32(a.GetVoxel(pos.Add(util.VoxelCoord{X: 1})).Interpolation) -
		int32(a.GetVoxel(pos.Add(util.VoxelCoord{X: -1})).Interpolation)
	dy := int32(a.GetVoxel(pos.Add(util.VoxelCoord{Y: 1})).Interpolation) -
		int32(a.GetVoxel(pos.Add(util.VoxelCoord{Y: -1})).Interpolation)
	dz := int32(a.GetVoxel(pos.Add(util.VoxelCoord{Z: 1})).Interpolation) -
		int32(a.GetVoxel(pos.Add(util.VoxelCoord{Z: -1})).Interpolation)

	return mgl32.Vec3{float32(dx), float32(dy), float32(dz)}
}

// SurfaceNormal retorna a normal da superfície na célula: o gradiente negado e
// normalizado (a densidade cresce para dentro do sólido; a normal aponta para
// fora). Vetor zero se o gradiente for nulo.
func (a *TileAccessor) SurfaceNormal(pos util.VoxelCoord) mgl32.Vec3 {
	g := a.Gradient(pos)
	if g.Len() == 0 {
		return mgl32.Vec3{}
	}
	return g.Mul(-1).Normalize()
}
