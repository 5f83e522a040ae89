package voxeldata

import (
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"VoxelVision/shared/util"
)

func openTestRepo(t *testing.T) *TileRepository {
	t.Helper()
	repo, err := OpenRepositoryPath(filepath.Join(t.TempDir(), "teste.vv"), "teste")
	if err != nil {
		t.Fatalf("OpenRepositoryPath: %v", err)
	}
	t.Cleanup(repo.Close)
	return repo
}

func TestRepositorySaveLoadRoundTrip(t *testing.T) {
	repo := openTestRepo(t)
	origin := util.NewVoxelCoord(2, -1, 3)
	orig := populate(t, true)

	if repo.HasData() {
		t.Error("HasData = true em banco recém-criado")
	}

	if err := repo.SaveTile(origin, orig, 7); err != nil {
		t.Fatalf("SaveTile: %v", err)
	}
	if !repo.HasData() {
		t.Error("HasData = false após salvar um tile")
	}

	restored, mtime, err := repo.LoadTile(origin)
	if err != nil {
		t.Fatalf("LoadTile: %v", err)
	}
	if mtime != 7 {
		t.Errorf("mtime = %d, quer 7", mtime)
	}
	assertEqualState(t, restored, orig)
}

func TestRepositoryUpsert(t *testing.T) {
	repo := openTestRepo(t)
	origin := util.NewVoxelCoord(0, 0, 0)

	if err := repo.SaveTile(origin, populate(t, false), 1); err != nil {
		t.Fatal(err)
	}
	second := populate(t, true)
	if err := repo.SaveTile(origin, second, 2); err != nil {
		t.Fatal(err)
	}

	restored, mtime, err := repo.LoadTile(origin)
	if err != nil {
		t.Fatal(err)
	}
	if mtime != 2 {
		t.Errorf("mtime = %d, quer 2 (upsert)", mtime)
	}
	assertEqualState(t, restored, second)
}

func TestRepositoryLoadMissing(t *testing.T) {
	repo := openTestRepo(t)

	_, _, err := repo.LoadTile(util.NewVoxelCoord(9, 9, 9))
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("LoadTile inexistente: erro = %v, quer gorm.ErrRecordNotFound", err)
	}
}

func TestRepositoryCorruptBlob(t *testing.T) {
	repo := openTestRepo(t)
	origin := util.NewVoxelCoord(1, 1, 1)

	if err := repo.SaveTile(origin, populate(t, false), 1); err != nil {
		t.Fatal(err)
	}

	// Trunca o payload direto no banco, simulando gravação interrompida
	if err := repo.db.Model(&TileModel{}).
		Where("id = ?", tileID(origin)).
		Update("data", []byte{0x01, 0x02}).Error; err != nil {
		t.Fatal(err)
	}

	_, _, err := repo.LoadTile(origin)
	if !errors.Is(err, ErrCorruptTile) {
		t.Errorf("LoadTile corrompido: erro = %v, quer ErrCorruptTile", err)
	}
}

func TestRepositoryEachTileMeta(t *testing.T) {
	repo := openTestRepo(t)

	withLod := populate(t, true)
	plain := populate(t, false)
	repo.SaveTile(util.NewVoxelCoord(0, 0, 0), withLod, 5)
	repo.SaveTile(util.NewVoxelCoord(1, 0, 0), plain, 6)

	metas := make(map[util.VoxelCoord]TileMeta)
	count := repo.EachTileMeta(func(meta TileMeta) {
		metas[meta.Origin] = meta
	})

	if count != 2 || len(metas) != 2 {
		t.Fatalf("EachTileMeta visitou %d tiles, quer 2", count)
	}

	first := metas[util.NewVoxelCoord(0, 0, 0)]
	if !first.Lod || first.MTime != 5 || first.NonEmpty != withLod.NonEmptyCount() {
		t.Errorf("meta do tile (0,0,0) = %+v inconsistente", first)
	}
	if metas[util.NewVoxelCoord(1, 0, 0)].Lod {
		t.Error("meta do tile (1,0,0) com Lod = true, quer false")
	}
}
