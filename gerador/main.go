package main

import (
	"log"
	"time"

	"VoxelVision/gerador/internal/pipeline"
	"VoxelVision/shared/config"
	"VoxelVision/shared/util"
	"VoxelVision/shared/voxeldata"
	"VoxelVision/shared/voxelgen"
)

func main() {
	log.Println("[Gerador] VoxelVision — geração de região de tiles")

	cfg := config.Load()
	log.Printf("[Gerador] Mundo '%s' | seed %d | tiles %dx%dx%d | %d voxels/tile | LOD: %v",
		cfg.WorldName, cfg.Seed, cfg.RegionTilesX, cfg.RegionTilesY, cfg.RegionTilesZ,
		cfg.VoxelsPerTile, cfg.CalculateLod)

	repo, err := voxeldata.OpenRepository(cfg.WorldName)
	if err != nil {
		log.Fatalf("[Gerador] Falha ao abrir persistência: %v", err)
	}
	defer repo.Close()

	source := voxelgen.NoiseSource{
		Seed:         cfg.Seed,
		SurfaceLevel: cfg.SurfaceLevel,
		Amplitude:    cfg.Amplitude,
		Frequency:    cfg.Frequency,
		Octaves:      cfg.Octaves,
	}

	preparer := pipeline.NewPreparer(pipeline.Options{
		Workers:       cfg.PipelineThreads,
		VoxelsPerTile: cfg.VoxelsPerTile,
		CalculateLod:  cfg.CalculateLod,
		Source:        source,
		Repo:          repo,
	})
	defer preparer.Stop()

	// Enfileira a região pela UniqueQueue: coordenadas repetidas (ex: retomada
	// parcial) não geram trabalho duplicado.
	queue := util.NewUniqueQueue[util.VoxelCoord, pipeline.Request]()
	mtime := time.Now().Unix()
	for x := int32(0); x < cfg.RegionTilesX; x++ {
		for y := int32(0); y < cfg.RegionTilesY; y++ {
			for z := int32(0); z < cfg.RegionTilesZ; z++ {
				origin := util.NewVoxelCoord(x, y, z)
				queue.Enqueue(origin, pipeline.Request{Origin: origin, MTime: mtime})
			}
		}
	}

	total := queue.Len()
	log.Printf("[Gerador] %d tiles enfileirados (%d workers)", total, cfg.PipelineThreads)

	start := time.Now()
	go func() {
		for {
			_, req, ok := queue.Dequeue()
			if !ok {
				return
			}
			for !preparer.Enqueue(req) {
				// Fila do pipeline cheia: espera os workers drenarem
				time.Sleep(10 * time.Millisecond)
			}
		}
	}()

	var empty, full, mixed, failed int
	for i := 0; i < total; i++ {
		res := <-preparer.Results()
		switch {
		case res.Err != nil:
			failed++
			log.Printf("[Gerador] ERRO no tile %v: %v", res.Origin, res.Err)
		case res.Empty:
			empty++
		case res.Full:
			full++
		default:
			mixed++
			if cfg.ShowTileStats {
				log.Printf("[Gerador] Tile %v: %d não-vazios, %d no LOD (%v)",
					res.Origin, res.NonEmpty, res.NonEmptyLod, res.Elapsed.Round(time.Millisecond))
			}
		}
	}

	log.Printf("[Gerador] Concluído em %v: %d com superfície, %d vazios, %d sólidos, %d falhas",
		time.Since(start).Round(time.Millisecond), mixed, empty, full, failed)
	log.Printf("[Gerador] Apenas os %d tiles com superfície precisam de triangulação (%.1f%% poupado)",
		mixed, 100*float64(empty+full)/float64(max(total, 1)))
}
