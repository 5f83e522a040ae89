// Package seam extrai os planos 2D de detalhe (LOD) de um tile a partir dos
// voxels de superfície do tile vizinho, para a costura transvoxel entre tiles
// de resoluções diferentes fechar sem rachaduras.
package seam

import (
	"fmt"

	"VoxelVision/shared/util"
	"VoxelVision/shared/voxeldata"
)

// ExtractSeam preenche o plano LOD da face informada de dst amostrando a
// borda de superfície de src (o vizinho que compartilha essa face) em
// resolução dobrada: células pares copiam a amostra do canto, células ímpares
// interpolam os cantos adjacentes. Ao final reconcilia o contador LOD.
//
// Pré-condições: dst com LOD habilitado e ambos com as mesmas dimensões.
func ExtractSeam(dst, src *voxeldata.TileAccessor, face util.Face) {
	if !dst.CalculateLod() {
		panic("seam: tile de destino sem LOD habilitado")
	}
	if dst.Dims() != src.Dims() {
		panic(fmt.Sprintf("seam: dimensões incompatíveis (%d != %d)",
			dst.VoxelsPerTile(), src.VoxelsPerTile()))
	}

	dims := dst.Dims()
	length := dims.VoxelLengthLod

	for u := int32(0); u < length; u++ {
		for v := int32(0); v < length; v++ {
			sample := refineBoundarySample(src, face, u, v)
			dst.SetVoxelLod(facePlanePos(face, u, v), sample, face)
		}
	}

	dst.SetNonEmptyCountLod(dst.CountNonEmptyInLod())
}

// facePlanePos monta a coordenada 3D sobre o plano zero da face, na ordem de
// projeção canônica (±x -> (y,z), ±y -> (x,z), ±z -> (x,y)).
func facePlanePos(face util.Face, u, v int32) util.VoxelCoord {
	switch face.Axis() {
	case 0:
		return util.NewVoxelCoord(0, u, v)
	case 1:
		return util.NewVoxelCoord(u, 0, v)
	default:
		return util.NewVoxelCoord(u, v, 0)
	}
}

// refineBoundarySample amostra a borda de src em resolução dobrada.
// (u, v) são coordenadas finas no plano LOD; u/2 e v/2 caem na grade de
// superfície do vizinho.
func refineBoundarySample(src *voxeldata.TileAccessor, face util.Face, u, v int32) voxeldata.Sample {
	surface := src.Dims().VoxelLengthSurface
	hu, hv := u/2, v/2
	// Na última célula ímpar o canto seguinte sairia da região de superfície
	hu1 := util.Min(hu+1, surface-1)
	hv1 := util.Min(hv+1, surface-1)

	corner := func(i, j int32) int32 {
		return int32(boundaryVoxel(src, face, i, j).Interpolation)
	}

	switch {
	case u%2 == 0 && v%2 == 0:
		return voxeldata.NewSample(int8(corner(hu, hv)))
	case u%2 != 0 && v%2 == 0:
		return voxeldata.NewSample(int8((corner(hu, hv) + corner(hu1, hv)) / 2))
	case u%2 == 0 && v%2 != 0:
		return voxeldata.NewSample(int8((corner(hu, hv) + corner(hu, hv1)) / 2))
	default:
		sum := corner(hu, hv) + corner(hu1, hv) + corner(hu, hv1) + corner(hu1, hv1)
		return voxeldata.NewSample(int8(sum / 4))
	}
}

// boundaryVoxel lê o voxel de superfície de src sobre o plano compartilhado
// com a face do tile de destino. Para uma face positiva de dst o vizinho
// encosta pelo seu lado de coordenada 0; para uma face negativa, pelo lado
// de coordenada VoxelLengthSurface-1.
func boundaryVoxel(src *voxeldata.TileAccessor, face util.Face, i, j int32) voxeldata.Sample {
	var plane int32
	if int32(face)%2 == 1 {
		plane = 0
	} else {
		plane = src.Dims().VoxelLengthSurface - 1
	}

	switch face.Axis() {
	case 0:
		return src.GetVoxel(util.NewVoxelCoord(plane, i, j))
	case 1:
		return src.GetVoxel(util.NewVoxelCoord(i, plane, j))
	default:
		return src.GetVoxel(util.NewVoxelCoord(i, j, plane))
	}
}
