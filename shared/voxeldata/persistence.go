package voxeldata

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"VoxelVision/shared/util"
)

// TileModel representa o esquema do banco de dados para um tile.
type TileModel struct {
	ID      string `gorm:"primaryKey"` // Coordenada formatada "X_Y_Z"
	X, Y, Z int32  `gorm:"index:idx_pos"`
	Data    []byte // Snapshot do accessor serializado em GOB

	// Contadores desnormalizados: permitem triagem vazio/cheio sem
	// decodificar o payload.
	NonEmpty    int32
	NonEmptyLod int32
	Lod         bool

	MTime     int64     // Versão/Timestamp
	UpdatedAt time.Time // Para controle interno do GORM
}

// WorldMetadata armazena informações globais do mundo no banco.
type WorldMetadata struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

const CurrentFormatVersion = 1

// TileMeta resume um tile persistido sem carregar o payload.
type TileMeta struct {
	Origin   util.VoxelCoord
	MTime    int64
	NonEmpty int32
	Lod      bool
}

// TileRepository persiste accessors de tiles em SQLite via GORM.
type TileRepository struct {
	db *gorm.DB

	// dbMu serializa escritas no banco SQLite (impede "database is locked")
	dbMu sync.Mutex
}

// OpenRepository abre (ou cria) o banco do mundo em saves/<nome>.vv.
func OpenRepository(worldName string) (*TileRepository, error) {
	if err := os.MkdirAll("saves", 0755); err != nil {
		return nil, err
	}
	return OpenRepositoryPath(filepath.Join("saves", fmt.Sprintf("%s.vv", worldName)), worldName)
}

// OpenRepositoryPath abre o banco em um caminho explícito e roda migrações.
func OpenRepositoryPath(dbPath, worldName string) (*TileRepository, error) {
	// Configuramos o logger para ser silencioso em produção
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no SQLite: %w", err)
	}

	// Migração automática das tabelas
	if err := db.AutoMigrate(&TileModel{}, &WorldMetadata{}); err != nil {
		return nil, fmt.Errorf("falha na migração do banco: %w", err)
	}

	db.Save(&WorldMetadata{Key: "FormatVersion", Value: fmt.Sprint(CurrentFormatVersion)})
	db.Save(&WorldMetadata{Key: "WorldName", Value: worldName})

	log.Printf("[Persistence] Banco de dados SQLite aberto: %s", dbPath)
	return &TileRepository{db: db}, nil
}

func tileID(origin util.VoxelCoord) string {
	return fmt.Sprintf("%d_%d_%d", origin.X, origin.Y, origin.Z)
}

// SaveTile serializa e grava (upsert) o accessor de um tile.
func (r *TileRepository) SaveTile(origin util.VoxelCoord, acc *TileAccessor, mtime int64) error {
	if r.db == nil {
		return fmt.Errorf("banco de dados não inicializado")
	}

	var buf bytes.Buffer
	if err := acc.EncodeSnapshot(&buf); err != nil {
		log.Printf("[Persistence] ERRO ao serializar tile %s: %v", tileID(origin), err)
		return err
	}

	model := TileModel{
		ID:          tileID(origin),
		X:           origin.X,
		Y:           origin.Y,
		Z:           origin.Z,
		Data:        buf.Bytes(),
		NonEmpty:    acc.NonEmptyCount(),
		NonEmptyLod: acc.NonEmptyCountLod(),
		Lod:         acc.CalculateLod(),
		MTime:       mtime,
	}

	r.dbMu.Lock()
	err := r.db.Save(&model).Error
	r.dbMu.Unlock()
	if err != nil {
		log.Printf("[Persistence] ERRO ao salvar tile %s: %v", model.ID, err)
	}
	return err
}

// LoadTile carrega e deserializa o accessor de um tile.
// Payload corrompido retorna ErrCorruptTile (embrulhado), nunca um accessor
// com arrays de tamanho errado.
func (r *TileRepository) LoadTile(origin util.VoxelCoord) (*TileAccessor, int64, error) {
	if r.db == nil {
		return nil, 0, fmt.Errorf("banco de dados não inicializado")
	}

	var model TileModel
	if err := r.db.First(&model, "id = ?", tileID(origin)).Error; err != nil {
		return nil, 0, err
	}

	acc, err := DecodeSnapshot(bytes.NewReader(model.Data))
	if err != nil {
		return nil, 0, fmt.Errorf("tile %s: %w", model.ID, err)
	}
	return acc, model.MTime, nil
}

// HasData verifica se o banco já possui algum tile salvo.
func (r *TileRepository) HasData() bool {
	if r.db == nil {
		return false
	}
	var count int64
	r.db.Model(&TileModel{}).Count(&count)
	return count > 0
}

// EachTileMeta percorre os metadados dos tiles persistidos sem carregar os
// payloads (não estoura a RAM com mundos grandes).
func (r *TileRepository) EachTileMeta(fn func(meta TileMeta)) int {
	if r.db == nil {
		return 0
	}

	var models []TileModel
	r.db.Select("x", "y", "z", "m_time", "non_empty", "lod").Find(&models)

	for _, m := range models {
		fn(TileMeta{
			Origin:   util.NewVoxelCoord(m.X, m.Y, m.Z),
			MTime:    m.MTime,
			NonEmpty: m.NonEmpty,
			Lod:      m.Lod,
		})
	}
	return len(models)
}

// Close fecha a conexão com o banco de dados SQLite.
func (r *TileRepository) Close() {
	if r.db != nil {
		sqlDB, _ := r.db.DB()
		if sqlDB != nil {
			log.Println("[Persistence] Fechando banco de dados SQLite...")
			sqlDB.Close()
		}
	}
}
