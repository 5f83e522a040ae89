package voxeldata

// Limites do escalar de interpolação de um voxel.
// O intervalo simétrico [-127, 127] permite que o zero fique exatamente na
// superfície: valores >= 0 estão dentro (ou sobre) a superfície, valores
// negativos estão fora.
const (
	InterpolationMin int8 = -127
	InterpolationMax int8 = 127
)

// Sample representa uma amostra de voxel: o escalar de densidade/interpolação
// consumido pelo marching cubes. Comparável com == (igualdade por valor).
type Sample struct {
	Interpolation int8
}

// NewSample cria uma amostra com o escalar informado.
func NewSample(interpolation int8) Sample {
	return Sample{Interpolation: interpolation}
}

// NonEmpty indica se a amostra está dentro ou sobre a superfície.
func (s Sample) NonEmpty() bool {
	return s.Interpolation >= 0
}

// IsMin indica se a amostra está totalmente fora da superfície (ar).
func (s Sample) IsMin() bool {
	return s.Interpolation == InterpolationMin
}

// IsMax indica se a amostra está totalmente dentro da superfície (sólido).
func (s Sample) IsMax() bool {
	return s.Interpolation == InterpolationMax
}

// MinSample retorna a amostra "ar" (completamente vazia).
func MinSample() Sample {
	return Sample{Interpolation: InterpolationMin}
}

// MaxSample retorna a amostra "sólida" (completamente cheia).
func MaxSample() Sample {
	return Sample{Interpolation: InterpolationMax}
}
