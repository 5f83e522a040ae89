package voxeldata

import (
	"fmt"

	"VoxelVision/shared/util"
)

// Dimensions agrupa as constantes derivadas do tamanho lógico de um tile.
// Calculadas uma única vez na construção e imutáveis pela vida do accessor.
type Dimensions struct {
	// VoxelLength é a aresta lógica do tile (voxels por tile).
	VoxelLength int32
	// VoxelLengthWithHalo inclui o halo de ±1 voxel mais uma célula extra de
	// padding, necessária para o cálculo de normais na borda.
	VoxelLengthWithHalo int32
	// VoxelLengthLod é a aresta de cada plano 2D de detalhe (o dobro da
	// resolução da superfície, para costura transvoxel).
	VoxelLengthLod int32
	// VoxelCount é o total de células do array principal (com halo).
	VoxelCount int32
	// VoxelCountLodPlane é o total de células de um plano LOD.
	VoxelCountLodPlane int32
	// VoxelCountLodAll é o total de células dos seis planos LOD.
	VoxelCountLodAll int32
	// VoxelLengthSurface é a aresta da região de superfície (sem halo).
	VoxelLengthSurface int32
	// VoxelCountSurface é o total de células da região de superfície.
	VoxelCountSurface int32
}

// ComputeDimensions deriva todas as constantes a partir de voxelsPerTile.
func ComputeDimensions(voxelsPerTile int32) Dimensions {
	length := voxelsPerTile
	halo := length + 3
	lod := (length + 1) * 2
	surface := length + 1
	return Dimensions{
		VoxelLength:         length,
		VoxelLengthWithHalo: halo,
		VoxelLengthLod:      lod,
		VoxelCount:          halo * halo * halo,
		VoxelCountLodPlane:  lod * lod,
		VoxelCountLodAll:    6 * lod * lod,
		VoxelLengthSurface:  surface,
		VoxelCountSurface:   surface * surface * surface,
	}
}

// VoxelIndex converte uma coordenada 3D (com halo) no índice linear do array
// principal. Função pura: é o mesmo mapeamento usado por SetVoxel/GetVoxel,
// exposto para quem preenche o array em massa via VoxelArray.
func (d Dimensions) VoxelIndex(pos util.VoxelCoord) int32 {
	h := d.VoxelLengthWithHalo
	return (pos.X+1)*h*h + (pos.Y+1)*h + (pos.Z + 1)
}

// PlaneIndex converte (face, coordenada 2D) no índice linear do array LOD.
func (d Dimensions) PlaneIndex(face util.Face, index util.PlaneCoord) int32 {
	return int32(face)*d.VoxelCountLodPlane + index.X*d.VoxelLengthLod + index.Y
}

// TileAccessor guarda todos os voxels que o estágio de triangulação precisa
// para extrair a superfície de um tile: a grade densa com halo e, se LOD
// estiver habilitado, seis planos 2D de detalhe para costura transvoxel
// (ver http://www.terathon.com/voxels/).
//
// Sem sincronização interna: um produtor preenche, depois um consumidor lê.
type TileAccessor struct {
	dims Dimensions

	voxels    []Sample
	voxelsLod []Sample // nil sse calculateLod == false

	calculateLod   bool
	numNonEmpty    int32
	numNonEmptyLod int32
}

// NewTileAccessor cria um accessor com o array principal alocado e preenchido
// com ar, sem planos LOD e contadores zerados. Nunca retorna nil.
func NewTileAccessor(voxelsPerTile int32) *TileAccessor {
	if voxelsPerTile < 1 {
		panic(fmt.Sprintf("voxeldata: voxelsPerTile inválido: %d", voxelsPerTile))
	}
	dims := ComputeDimensions(voxelsPerTile)
	a := &TileAccessor{
		dims:   dims,
		voxels: make([]Sample, dims.VoxelCount),
	}
	fillAir(a.voxels)
	return a
}

func fillAir(voxels []Sample) {
	air := MinSample()
	for i := range voxels {
		voxels[i] = air
	}
}

// Dims retorna as constantes derivadas do tile.
func (a *TileAccessor) Dims() Dimensions {
	return a.dims
}

// VoxelsPerTile retorna o tamanho lógico configurado na construção.
func (a *TileAccessor) VoxelsPerTile() int32 {
	return a.dims.VoxelLength
}

// assertInHalo valida o intervalo -1 <= pos < VoxelLengthWithHalo-1 por eixo.
// Violação é erro de programação do chamador, não condição recuperável.
func (a *TileAccessor) assertInHalo(pos util.VoxelCoord) {
	if !pos.InRange(-1, a.dims.VoxelLengthWithHalo-1) {
		panic(fmt.Sprintf("voxeldata: coordenada %v fora do domínio com halo [-1, %d)",
			pos, a.dims.VoxelLengthWithHalo-1))
	}
}

// voxelIndex delega para o mapeamento puro de Dimensions.
func (a *TileAccessor) voxelIndex(pos util.VoxelCoord) int32 {
	return a.dims.VoxelIndex(pos)
}

// SetVoxel grava uma amostra na posição informada e retorna true se o valor
// armazenado mudou.
//
// Nota: o contador de não-vazios é incrementado de forma oportunista sempre
// que a nova amostra é não-vazia dentro da região de superfície, sem olhar o
// valor antigo. Gravar duas vezes a mesma célula conta em dobro; quem escreve
// em massa deve reconciliar depois via SetNonEmptyCount.
func (a *TileAccessor) SetVoxel(pos util.VoxelCoord, toSet Sample) bool {
	a.assertInHalo(pos)

	if toSet.NonEmpty() && pos.InRange(0, a.dims.VoxelLengthSurface) {
		a.numNonEmpty++
	}

	index := a.voxelIndex(pos)
	oldValue := a.voxels[index]
	a.voxels[index] = toSet

	return oldValue != toSet
}

// GetVoxel retorna a amostra na posição informada (sem mutação).
func (a *TileAccessor) GetVoxel(pos util.VoxelCoord) Sample {
	a.assertInHalo(pos)
	return a.voxels[a.voxelIndex(pos)]
}

// SetVoxelLod grava uma amostra no plano de detalhe da face informada.
// A posição 3D deve estar sobre o plano zero da face (ver ProjectFaceCoord).
// Mesma ressalva de contagem oportunista de SetVoxel, agora sobre o contador LOD.
func (a *TileAccessor) SetVoxelLod(pos util.VoxelCoord, toSet Sample, face util.Face) bool {
	return a.setVoxelPlane(a.ProjectFaceCoord(pos, face), toSet, face)
}

// GetVoxelLod retorna a amostra do plano de detalhe da face informada.
func (a *TileAccessor) GetVoxelLod(pos util.VoxelCoord, face util.Face) Sample {
	return a.getVoxelPlane(a.ProjectFaceCoord(pos, face), face)
}

// setVoxelPlane grava direto na coordenada 2D já projetada.
func (a *TileAccessor) setVoxelPlane(index util.PlaneCoord, toSet Sample, face util.Face) bool {
	a.assertLodAccess(index, face)

	if toSet.NonEmpty() {
		a.numNonEmptyLod++
	}

	i := a.planeIndex(index, face)
	oldValue := a.voxelsLod[i]
	a.voxelsLod[i] = toSet

	return oldValue != toSet
}

// getVoxelPlane lê direto na coordenada 2D já projetada.
func (a *TileAccessor) getVoxelPlane(index util.PlaneCoord, face util.Face) Sample {
	a.assertLodAccess(index, face)
	return a.voxelsLod[a.planeIndex(index, face)]
}

func (a *TileAccessor) assertLodAccess(index util.PlaneCoord, face util.Face) {
	if !a.calculateLod || a.voxelsLod == nil {
		panic("voxeldata: acesso a plano LOD com LOD desabilitado")
	}
	if !face.Valid() {
		panic(fmt.Sprintf("voxeldata: face inválida: %d", int32(face)))
	}
	if !index.InRange(a.dims.VoxelLengthLod) {
		panic(fmt.Sprintf("voxeldata: coordenada %v fora do plano LOD [0, %d)",
			index, a.dims.VoxelLengthLod))
	}
}

// planeIndex delega para o mapeamento puro de Dimensions.
func (a *TileAccessor) planeIndex(index util.PlaneCoord, face util.Face) int32 {
	return a.dims.PlaneIndex(face, index)
}

// ProjectFaceCoord projeta uma coordenada 3D de um cubo LOD na coordenada 2D
// do plano da face. O transvoxel precisa de apenas um array 2D de meia
// resolução por face do cubo; o eixo normal à face deve ser zero:
//
//	faces ±x -> (y, z); faces ±y -> (x, z); faces ±z -> (x, y)
func (a *TileAccessor) ProjectFaceCoord(pos util.VoxelCoord, face util.Face) util.PlaneCoord {
	if !pos.InRange(0, a.dims.VoxelLengthLod) {
		panic(fmt.Sprintf("voxeldata: coordenada %v fora do cubo LOD [0, %d)",
			pos, a.dims.VoxelLengthLod))
	}

	switch face {
	case util.FaceNegX, util.FacePosX:
		if pos.X != 0 {
			panic(fmt.Sprintf("voxeldata: face %v exige x == 0, recebido %v", face, pos))
		}
		return util.NewPlaneCoord(pos.Y, pos.Z)
	case util.FaceNegY, util.FacePosY:
		if pos.Y != 0 {
			panic(fmt.Sprintf("voxeldata: face %v exige y == 0, recebido %v", face, pos))
		}
		return util.NewPlaneCoord(pos.X, pos.Z)
	case util.FaceNegZ, util.FacePosZ:
		if pos.Z != 0 {
			panic(fmt.Sprintf("voxeldata: face %v exige z == 0, recebido %v", face, pos))
		}
		return util.NewPlaneCoord(pos.X, pos.Y)
	}
	panic(fmt.Sprintf("voxeldata: face inválida: %d", int32(face)))
}

// IsEmpty indica que nenhuma amostra da região de superfície é não-vazia.
// O(1): permite ao estágio de triangulação descartar tiles de puro ar.
func (a *TileAccessor) IsEmpty() bool {
	return a.numNonEmpty == 0
}

// IsFull indica que toda a região de superfície é não-vazia.
// O(1): tiles totalmente sólidos também não produzem superfície.
func (a *TileAccessor) IsFull() bool {
	return a.numNonEmpty == a.dims.VoxelCountSurface
}

// CalculateLod indica se os planos de detalhe devem ser calculados/costurados.
func (a *TileAccessor) CalculateLod() bool {
	return a.calculateLod
}

// SetCalculateLod habilita ou desabilita os planos de detalhe. Habilitar aloca
// os seis planos (que devem estar ausentes); desabilitar os libera. Chamadas
// repetidas com o mesmo valor são no-op.
func (a *TileAccessor) SetCalculateLod(lod bool) {
	if a.calculateLod == lod {
		return
	}
	a.calculateLod = lod
	if a.calculateLod {
		if a.voxelsLod != nil {
			panic("voxeldata: planos LOD já alocados")
		}
		a.voxelsLod = make([]Sample, a.dims.VoxelCountLodAll)
		fillAir(a.voxelsLod)
	} else {
		a.voxelsLod = nil
	}
}

// NonEmptyCount retorna quantas amostras da região de superfície são não-vazias.
func (a *TileAccessor) NonEmptyCount() int32 {
	return a.numNonEmpty
}

// NonEmptyCountLod retorna quantas amostras dos planos LOD são não-vazias.
func (a *TileAccessor) NonEmptyCountLod() int32 {
	return a.numNonEmptyLod
}

// SetNonEmptyCount sobrescreve o contador de superfície. Usado para
// sincronização externa após escrita em massa (otimização).
func (a *TileAccessor) SetNonEmptyCount(toSet int32) {
	a.numNonEmpty = toSet
}

// SetNonEmptyCountLod sobrescreve o contador LOD. Usado para sincronização
// externa após escrita em massa (otimização).
func (a *TileAccessor) SetNonEmptyCountLod(toSet int32) {
	a.numNonEmptyLod = toSet
}

// VoxelArray expõe o array principal para preenchimento em massa por um
// gerador. Quem escrever por aqui deve reconciliar via SetNonEmptyCount.
func (a *TileAccessor) VoxelArray() []Sample {
	return a.voxels
}

// VoxelArrayLod expõe os seis planos LOD contíguos, ou nil se LOD desabilitado.
func (a *TileAccessor) VoxelArrayLod() []Sample {
	return a.voxelsLod
}

// CountNonEmptyInSurface percorre a região de superfície e retorna a contagem
// exata de amostras não-vazias. O(VoxelCountSurface) — o caminho de
// reconciliação após escrita em massa.
func (a *TileAccessor) CountNonEmptyInSurface() int32 {
	var count int32
	surface := a.dims.VoxelLengthSurface
	for x := int32(0); x < surface; x++ {
		for y := int32(0); y < surface; y++ {
			for z := int32(0); z < surface; z++ {
				if a.voxels[a.voxelIndex(util.NewVoxelCoord(x, y, z))].NonEmpty() {
					count++
				}
			}
		}
	}
	return count
}

// CountNonEmptyInLod percorre os planos LOD e retorna a contagem exata de
// amostras não-vazias. Zero se LOD desabilitado.
func (a *TileAccessor) CountNonEmptyInLod() int32 {
	var count int32
	for _, s := range a.voxelsLod {
		if s.NonEmpty() {
			count++
		}
	}
	return count
}
