package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config armazena as configurações do VoxelVision.
type Config struct {
	// Mundo
	WorldName     string `json:"world_name"`
	Seed          uint32 `json:"seed"`
	VoxelsPerTile int32  `json:"voxels_per_tile"`

	// Região a gerar (em tiles)
	RegionTilesX int32 `json:"region_tiles_x"`
	RegionTilesY int32 `json:"region_tiles_y"`
	RegionTilesZ int32 `json:"region_tiles_z"`

	// Pipeline
	PipelineThreads int  `json:"pipeline_threads"`
	CalculateLod    bool `json:"calculate_lod"`

	// Fonte de densidade
	SurfaceLevel float64 `json:"surface_level"` // Altura base do terreno (em voxels)
	Amplitude    float64 `json:"amplitude"`     // Variação vertical máxima
	Frequency    float64 `json:"frequency"`     // Frequência base do ruído
	Octaves      int     `json:"octaves"`       // Oitavas do fBm

	// Debug
	ShowTileStats bool `json:"show_tile_stats"`
}

// DefaultConfig retorna a configuração padrão.
func DefaultConfig() *Config {
	return &Config{
		WorldName:     "mundo",
		Seed:          42,
		VoxelsPerTile: 16,

		RegionTilesX: 4,
		RegionTilesY: 2,
		RegionTilesZ: 4,

		PipelineThreads: 4,
		CalculateLod:    false,

		SurfaceLevel: 12.0,
		Amplitude:    8.0,
		Frequency:    0.035,
		Octaves:      4,

		ShowTileStats: false,
	}
}

// configPath retorna o caminho do arquivo de configuração.
func configPath() string {
	execDir, err := os.Executable()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(filepath.Dir(execDir), "config.json")
}

// Load carrega as configurações do arquivo JSON ao lado do executável.
// Se o arquivo não existir, retorna as configurações padrão.
func Load() *Config {
	return LoadFrom(configPath())
}

// LoadFrom carrega as configurações de um caminho explícito. Arquivo ausente
// ou JSON inválido caem nas configurações padrão.
func LoadFrom(path string) *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}

	return cfg
}

// Save salva as configurações no arquivo JSON ao lado do executável.
func (c *Config) Save() error {
	return c.SaveTo(configPath())
}

// SaveTo salva as configurações em um caminho explícito.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
