package util

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Vector3 é um alias para rl.Vector3 para conveniência
type Vector3 = rl.Vector3

// VoxelCoord representa uma coordenada inteira no espaço de voxels.
// Dentro de um tile o intervalo válido inclui o halo (-1 em cada eixo).
type VoxelCoord struct {
	X, Y, Z int32
}

// NewVoxelCoord cria uma nova coordenada de voxel.
func NewVoxelCoord(x, y, z int32) VoxelCoord {
	return VoxelCoord{X: x, Y: y, Z: z}
}

// Add soma duas coordenadas.
func (c VoxelCoord) Add(other VoxelCoord) VoxelCoord {
	return VoxelCoord{
		X: c.X + other.X,
		Y: c.Y + other.Y,
		Z: c.Z + other.Z,
	}
}

// Sub subtrai duas coordenadas.
func (c VoxelCoord) Sub(other VoxelCoord) VoxelCoord {
	return VoxelCoord{
		X: c.X - other.X,
		Y: c.Y - other.Y,
		Z: c.Z - other.Z,
	}
}

// Scale multiplica todos os eixos por um fator.
func (c VoxelCoord) Scale(f int32) VoxelCoord {
	return VoxelCoord{X: c.X * f, Y: c.Y * f, Z: c.Z * f}
}

// Equals verifica igualdade entre coordenadas.
func (c VoxelCoord) Equals(other VoxelCoord) bool {
	return c.X == other.X && c.Y == other.Y && c.Z == other.Z
}

// InRange verifica se todos os eixos estão dentro de [min, max) (semiaberto).
func (c VoxelCoord) InRange(min, max int32) bool {
	return c.X >= min && c.X < max &&
		c.Y >= min && c.Y < max &&
		c.Z >= min && c.Z < max
}

// String retorna a representação em string da coordenada.
func (c VoxelCoord) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y, c.Z)
}

// PlaneCoord representa uma coordenada 2D dentro de um plano de detalhe (LOD)
// de uma face do tile.
type PlaneCoord struct {
	X, Y int32
}

// NewPlaneCoord cria uma nova coordenada de plano.
func NewPlaneCoord(x, y int32) PlaneCoord {
	return PlaneCoord{X: x, Y: y}
}

// InRange verifica se ambos os eixos estão dentro de [0, max).
func (p PlaneCoord) InRange(max int32) bool {
	return p.X >= 0 && p.X < max && p.Y >= 0 && p.Y < max
}

// String retorna a representação em string da coordenada.
func (p PlaneCoord) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Face identifica uma das seis faces de um tile cúbico.
// A ordem (negativa antes da positiva, eixo X antes de Y antes de Z) faz parte
// do contrato de indexação dos planos LOD e não pode mudar após persistência.
type Face int32

const (
	FaceNegX Face = 0
	FacePosX Face = 1
	FaceNegY Face = 2
	FacePosY Face = 3
	FaceNegZ Face = 4
	FacePosZ Face = 5

	FaceCount = 6
)

// AllFaces lista as faces na ordem canônica de indexação.
var AllFaces = [FaceCount]Face{FaceNegX, FacePosX, FaceNegY, FacePosY, FaceNegZ, FacePosZ}

// Valid verifica se o valor está dentro do intervalo de faces conhecidas.
func (f Face) Valid() bool {
	return f >= FaceNegX && f <= FacePosZ
}

// Axis retorna o eixo normal à face (0=X, 1=Y, 2=Z).
func (f Face) Axis() int32 {
	return int32(f) / 2
}

// Opposite retorna a face oposta (ex: FaceNegX -> FacePosX).
func (f Face) Opposite() Face {
	return f ^ 1
}

// String retorna o nome da face.
func (f Face) String() string {
	switch f {
	case FaceNegX:
		return "-x"
	case FacePosX:
		return "+x"
	case FaceNegY:
		return "-y"
	case FacePosY:
		return "+y"
	case FaceNegZ:
		return "-z"
	case FacePosZ:
		return "+z"
	}
	return fmt.Sprintf("face(%d)", int32(f))
}

// FaceOffsets mapeia faces para o offset unitário do vizinho naquela direção.
var FaceOffsets = map[Face]VoxelCoord{
	FaceNegX: {X: -1, Y: 0, Z: 0},
	FacePosX: {X: 1, Y: 0, Z: 0},
	FaceNegY: {X: 0, Y: -1, Z: 0},
	FacePosY: {X: 0, Y: 1, Z: 0},
	FaceNegZ: {X: 0, Y: 0, Z: -1},
	FacePosZ: {X: 0, Y: 0, Z: 1},
}

// Neighbor retorna a coordenada deslocada uma unidade na direção da face.
func (c VoxelCoord) Neighbor(f Face) VoxelCoord {
	return c.Add(FaceOffsets[f])
}

// TileScale controla a escala de conversão voxel → mundo 3D.
const TileScale float32 = 1.0

// VoxelToWorldPos converte uma coordenada de voxel para o canto de origem no mundo 3D.
func VoxelToWorldPos(coord VoxelCoord) rl.Vector3 {
	return rl.Vector3{
		X: float32(coord.X) * TileScale,
		Y: float32(coord.Y) * TileScale,
		Z: float32(coord.Z) * TileScale,
	}
}

// VoxelToWorldCenter converte para o centro do voxel no mundo 3D.
func VoxelToWorldCenter(coord VoxelCoord) rl.Vector3 {
	pos := VoxelToWorldPos(coord)
	pos.X += TileScale * 0.5
	pos.Y += TileScale * 0.5
	pos.Z += TileScale * 0.5
	return pos
}

// WorldToVoxelCoord converte uma posição 3D do mundo para a coordenada do voxel que a contém.
func WorldToVoxelCoord(pos rl.Vector3) VoxelCoord {
	return VoxelCoord{
		X: int32(math.Floor(float64(pos.X / TileScale))),
		Y: int32(math.Floor(float64(pos.Y / TileScale))),
		Z: int32(math.Floor(float64(pos.Z / TileScale))),
	}
}
