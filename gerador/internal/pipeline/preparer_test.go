package pipeline

import (
	"testing"
	"time"

	"VoxelVision/shared/util"
	"VoxelVision/shared/voxelgen"
)

func collectResults(t *testing.T, p *Preparer, want int) map[util.VoxelCoord]Result {
	t.Helper()
	results := make(map[util.VoxelCoord]Result, want)
	timeout := time.After(30 * time.Second)
	for len(results) < want {
		select {
		case res := <-p.Results():
			results[res.Origin] = res
		case <-timeout:
			t.Fatalf("timeout aguardando resultados: %d de %d", len(results), want)
		}
	}
	return results
}

func TestPreparerClassifiesRegion(t *testing.T) {
	// Chão plano na altura 2.5: tiles y=0 cortam a superfície, tiles acima são
	// puro ar e tiles abaixo são sólidos
	p := NewPreparer(Options{
		Workers:       2,
		VoxelsPerTile: 4,
		Source:        voxelgen.PlaneSource{Height: 2.5},
	})
	defer p.Stop()

	origins := []util.VoxelCoord{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 2, Z: 0},
		{X: 0, Y: -2, Z: 0},
	}
	for _, origin := range origins {
		if !p.Enqueue(Request{Origin: origin, MTime: 1}) {
			t.Fatalf("Enqueue(%v) recusado", origin)
		}
	}

	results := collectResults(t, p, len(origins))

	for _, origin := range origins[:2] {
		res := results[origin]
		if res.Empty || res.Full {
			t.Errorf("tile %v na superfície: Empty = %v, Full = %v", origin, res.Empty, res.Full)
		}
		if res.NonEmpty <= 0 {
			t.Errorf("tile %v na superfície com NonEmpty = %d", origin, res.NonEmpty)
		}
	}

	if res := results[util.NewVoxelCoord(0, 2, 0)]; !res.Empty {
		t.Errorf("tile de puro ar com Empty = false: %+v", res)
	}
	if res := results[util.NewVoxelCoord(0, -2, 0)]; !res.Full {
		t.Errorf("tile subterrâneo com Full = false: %+v", res)
	}
}

func TestPreparerSeamsOnlySurfaceTiles(t *testing.T) {
	p := NewPreparer(Options{
		Workers:       1,
		VoxelsPerTile: 4,
		CalculateLod:  true,
		Source:        voxelgen.PlaneSource{Height: 2},
	})
	defer p.Stop()

	p.Enqueue(Request{Origin: util.NewVoxelCoord(0, 0, 0), MTime: 1})
	p.Enqueue(Request{Origin: util.NewVoxelCoord(0, 5, 0), MTime: 1})

	results := collectResults(t, p, 2)

	surface := results[util.NewVoxelCoord(0, 0, 0)]
	if surface.NonEmptyLod <= 0 {
		t.Errorf("tile com superfície e LOD habilitado: NonEmptyLod = %d", surface.NonEmptyLod)
	}

	air := results[util.NewVoxelCoord(0, 5, 0)]
	if !air.Empty || air.NonEmptyLod != 0 {
		t.Errorf("tile de puro ar não deveria costurar LOD: %+v", air)
	}
}

// faultySource falha ao ser amostrada no halo negativo e devolve ar no resto
// do domínio, para derrubar a preparação de um tile específico.
type faultySource struct{}

func (faultySource) Density(x, y, z float64) float64 {
	if x < 0 {
		panic("amostra fora do domínio da fonte")
	}
	return -1
}

func TestPreparerRecoversFromPanickingSource(t *testing.T) {
	// O tile (0, 0, 0) amostra x = -1 pelo halo e derruba a geração; o tile
	// (1, 0, 0) só amostra x >= 3 e completa normalmente no mesmo worker
	p := NewPreparer(Options{
		Workers:       1,
		VoxelsPerTile: 4,
		Source:        faultySource{},
	})
	defer p.Stop()

	p.Enqueue(Request{Origin: util.NewVoxelCoord(0, 0, 0), MTime: 1})
	p.Enqueue(Request{Origin: util.NewVoxelCoord(1, 0, 0), MTime: 1})

	results := collectResults(t, p, 2)

	if res := results[util.NewVoxelCoord(0, 0, 0)]; res.Err == nil {
		t.Error("tile com fonte quebrada veio sem Err")
	}
	if res := results[util.NewVoxelCoord(1, 0, 0)]; res.Err != nil {
		t.Errorf("worker não sobreviveu ao pânico do tile anterior: %v", res.Err)
	}

	// A entrada pendente do tile que falhou foi liberada junto com o resultado
	if !p.Enqueue(Request{Origin: util.NewVoxelCoord(0, 0, 0), MTime: 2}) {
		t.Error("tile com erro continuou pendente após o resultado")
	}
}

func TestPreparerDeduplicatesPending(t *testing.T) {
	// Um worker só, ocupado com uma requisição pesada na frente: a duplicata
	// chega enquanto a original ainda está pendente
	p := NewPreparer(Options{
		Workers:       1,
		VoxelsPerTile: 64,
		Source:        voxelgen.PlaneSource{Height: 8},
	})
	defer p.Stop()

	p.Enqueue(Request{Origin: util.NewVoxelCoord(0, 0, 0), MTime: 1})

	origin := util.NewVoxelCoord(7, 7, 7)
	first := p.Enqueue(Request{Origin: origin, MTime: 1})
	second := p.Enqueue(Request{Origin: origin, MTime: 1})

	if !first {
		t.Error("primeira Enqueue recusada")
	}
	if second {
		t.Error("Enqueue duplicada aceita com requisição ainda pendente")
	}
}
