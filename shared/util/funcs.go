package util

// Clamp limita um valor ao intervalo [lower, upper].
func Clamp(v, lower, upper float64) float64 {
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}

// Abs retorna o valor absoluto de um int32.
func Abs(n int32) int32 {
	if n < 0 {
		return -n
	}
	return n
}

// Max retorna o maior de dois int32.
func Max(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// Min retorna o menor de dois int32.
func Min(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
