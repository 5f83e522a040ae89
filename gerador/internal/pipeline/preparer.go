// Package pipeline prepara tiles para a extração de superfície: gera os
// voxels, costura os planos LOD, classifica vazio/cheio e persiste.
package pipeline

import (
	"fmt"
	"log"
	"sync"
	"time"

	"VoxelVision/shared/seam"
	"VoxelVision/shared/util"
	"VoxelVision/shared/voxeldata"
	"VoxelVision/shared/voxelgen"
)

// Request representa um pedido de preparação de um tile.
type Request struct {
	Origin util.VoxelCoord // Coordenada do tile na grade de tiles
	MTime  int64           // Versão dos dados no momento da requisição
}

// Result contém o desfecho da preparação de um tile.
type Result struct {
	Origin      util.VoxelCoord
	Empty       bool  // Nenhuma amostra de superfície não-vazia: triangulação pode pular
	Full        bool  // Região de superfície totalmente sólida: idem
	NonEmpty    int32 // Contador reconciliado da região de superfície
	NonEmptyLod int32 // Contador reconciliado dos planos LOD (0 se desabilitado)
	Err         error
	Elapsed     time.Duration
}

// Options configura um Preparer.
type Options struct {
	Workers       int
	VoxelsPerTile int32
	CalculateLod  bool
	Source        voxelgen.DensitySource
	Repo          *voxeldata.TileRepository // opcional: nil desliga persistência
}

// Preparer é o pool de workers que prepara tiles.
type Preparer struct {
	opts     Options
	requests chan Request
	results  chan Result
	stop     chan struct{}

	pending   map[util.VoxelCoord]bool
	pendingMu sync.Mutex
}

// NewPreparer cria e inicia um novo pool de preparação.
func NewPreparer(opts Options) *Preparer {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	p := &Preparer{
		opts:     opts,
		requests: make(chan Request, 2000),
		results:  make(chan Result, 2000),
		stop:     make(chan struct{}),
		pending:  make(map[util.VoxelCoord]bool),
	}

	for i := 0; i < opts.Workers; i++ {
		go p.worker()
	}

	return p
}

// Enqueue enfileira um tile se ele ainda não estiver pendente.
func (p *Preparer) Enqueue(req Request) bool {
	p.pendingMu.Lock()
	if p.pending[req.Origin] {
		p.pendingMu.Unlock()
		return false
	}
	p.pending[req.Origin] = true
	p.pendingMu.Unlock()

	select {
	case p.requests <- req:
		return true
	default:
		// Se a fila estiver cheia, remove do pendente para tentar depois
		p.pendingMu.Lock()
		delete(p.pending, req.Origin)
		p.pendingMu.Unlock()
		return false
	}
}

// Results expõe o canal de resultados.
func (p *Preparer) Results() <-chan Result {
	return p.results
}

// Stop encerra os workers.
func (p *Preparer) Stop() {
	close(p.stop)
}

func (p *Preparer) worker() {
	for {
		select {
		case req := <-p.requests:
			res := p.prepare(req)

			p.pendingMu.Lock()
			delete(p.pending, req.Origin)
			p.pendingMu.Unlock()

			p.results <- res
		case <-p.stop:
			return
		}
	}
}

// prepare gera, costura, classifica e persiste um único tile.
// Um pânico no caminho de geração vira um Result com Err: o worker sobrevive e
// quem drena os resultados nunca fica esperando um tile que não vem.
func (p *Preparer) prepare(req Request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Erro no Pipeline Worker: %v", r)
			res = Result{
				Origin: req.Origin,
				Err:    fmt.Errorf("pânico ao preparar tile %v: %v", req.Origin, r),
			}
		}
	}()

	start := time.Now()
	gen := voxelgen.NewGenerator(p.opts.Source)

	acc := voxeldata.NewTileAccessor(p.opts.VoxelsPerTile)
	gen.FillTile(acc, req.Origin)

	// Costura LOD apenas para tiles que podem produzir superfície: tiles de
	// puro ar ou sólidos nunca chegam ao estágio de triangulação.
	if p.opts.CalculateLod && !acc.IsEmpty() && !acc.IsFull() {
		acc.SetCalculateLod(true)
		for _, face := range util.AllFaces {
			neighbor := voxeldata.NewTileAccessor(p.opts.VoxelsPerTile)
			gen.FillTile(neighbor, req.Origin.Neighbor(face))
			seam.ExtractSeam(acc, neighbor, face)
		}
	}

	res = Result{
		Origin:      req.Origin,
		Empty:       acc.IsEmpty(),
		Full:        acc.IsFull(),
		NonEmpty:    acc.NonEmptyCount(),
		NonEmptyLod: acc.NonEmptyCountLod(),
		Elapsed:     time.Since(start),
	}

	if p.opts.Repo != nil {
		if err := p.opts.Repo.SaveTile(req.Origin, acc, req.MTime); err != nil {
			res.Err = err
		}
	}

	return res
}
