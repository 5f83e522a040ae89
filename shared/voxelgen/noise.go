package voxelgen

// Hashing determinístico para ruído: estável entre execuções e plataformas,
// sem math/rand, para que tiles vizinhos fechem sem costura.

// hash32 mistura um uint32 com avalanche (estilo finalizador do Murmur).
func hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// hash3 retorna um hash estável para coordenadas inteiras 3D + seed.
// Constantes ímpares grandes descorrelacionam os eixos.
func hash3(seed uint32, x, y, z int32) uint32 {
	h := seed
	h ^= uint32(x) * 0x9e3779b1
	h ^= uint32(y) * 0x85ebca6b
	h ^= uint32(z) * 0xc2b2ae35
	return hash32(h)
}

// latticeValue retorna o valor do reticulado em [-1, 1] para um canto inteiro.
func latticeValue(seed uint32, x, y, z int32) float64 {
	return float64(hash3(seed, x, y, z))/float64(1<<31) - 1.0
}

// smoothstep suaviza o fator de interpolação (derivada nula nos extremos).
func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// ValueNoise3 amostra ruído de valor trilinearmente interpolado em [-1, 1].
func ValueNoise3(seed uint32, x, y, z float64) float64 {
	x0, y0, z0 := int32(floor(x)), int32(floor(y)), int32(floor(z))
	tx := smoothstep(x - floor(x))
	ty := smoothstep(y - floor(y))
	tz := smoothstep(z - floor(z))

	c000 := latticeValue(seed, x0, y0, z0)
	c100 := latticeValue(seed, x0+1, y0, z0)
	c010 := latticeValue(seed, x0, y0+1, z0)
	c110 := latticeValue(seed, x0+1, y0+1, z0)
	c001 := latticeValue(seed, x0, y0, z0+1)
	c101 := latticeValue(seed, x0+1, y0, z0+1)
	c011 := latticeValue(seed, x0, y0+1, z0+1)
	c111 := latticeValue(seed, x0+1, y0+1, z0+1)

	return lerp(
		lerp(lerp(c000, c100, tx), lerp(c010, c110, tx), ty),
		lerp(lerp(c001, c101, tx), lerp(c011, c111, tx), ty),
		tz,
	)
}

// Fbm3 soma oitavas de ValueNoise3 (fractal brownian motion), normalizado
// para aproximadamente [-1, 1].
func Fbm3(seed uint32, x, y, z float64, octaves int, frequency, lacunarity, gain float64) float64 {
	sum := 0.0
	amplitude := 1.0
	norm := 0.0
	freq := frequency

	for i := 0; i < octaves; i++ {
		// Seed distinta por oitava para não alinhar os reticulados
		sum += amplitude * ValueNoise3(seed+uint32(i)*0x27d4eb2f, x*freq, y*freq, z*freq)
		norm += amplitude
		amplitude *= gain
		freq *= lacunarity
	}

	if norm == 0 {
		return 0
	}
	return sum / norm
}

// floor local para evitar importar math só por isso nos hot loops.
func floor(v float64) float64 {
	f := float64(int64(v))
	if v < f {
		return f - 1
	}
	return f
}
