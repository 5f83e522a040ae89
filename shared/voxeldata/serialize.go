package voxeldata

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
)

// ErrCorruptTile indica que um tile persistido está truncado ou inconsistente.
// Deserialização nunca produz um accessor com arrays de tamanho errado.
var ErrCorruptTile = errors.New("voxeldata: tile persistido corrompido")

// maxVoxelsPerTile limita o tamanho aceito ao deserializar, para que um blob
// corrompido não provoque uma alocação absurda.
const maxVoxelsPerTile = 512

// Ordem lógica dos campos persistidos (contrato de compatibilidade):
//
//	voxelsPerTile, numNonEmpty, numNonEmptyLod, calculateLod,
//	voxels, e os planos LOD apenas quando calculateLod.
//
// A flag precisa ser aplicada via SetCalculateLod antes do payload, para que
// os arrays estejam alocados de forma consistente ao recebê-lo.

// EncodeSnapshot serializa o estado completo do accessor.
func (a *TileAccessor) EncodeSnapshot(w io.Writer) error {
	enc := gob.NewEncoder(w)

	if err := enc.Encode(a.dims.VoxelLength); err != nil {
		return fmt.Errorf("voxeldata: falha ao serializar tile: %w", err)
	}
	if err := enc.Encode(a.numNonEmpty); err != nil {
		return fmt.Errorf("voxeldata: falha ao serializar tile: %w", err)
	}
	if err := enc.Encode(a.numNonEmptyLod); err != nil {
		return fmt.Errorf("voxeldata: falha ao serializar tile: %w", err)
	}
	if err := enc.Encode(a.calculateLod); err != nil {
		return fmt.Errorf("voxeldata: falha ao serializar tile: %w", err)
	}
	if err := enc.Encode(a.voxels); err != nil {
		return fmt.Errorf("voxeldata: falha ao serializar tile: %w", err)
	}
	if a.calculateLod {
		if err := enc.Encode(a.voxelsLod); err != nil {
			return fmt.Errorf("voxeldata: falha ao serializar tile: %w", err)
		}
	}
	return nil
}

// DecodeSnapshot reconstrói um accessor a partir de um snapshot serializado.
// Blobs truncados ou com tamanhos inconsistentes retornam ErrCorruptTile.
func DecodeSnapshot(r io.Reader) (*TileAccessor, error) {
	dec := gob.NewDecoder(r)

	var voxelsPerTile int32
	if err := dec.Decode(&voxelsPerTile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptTile, err)
	}
	if voxelsPerTile < 1 || voxelsPerTile > maxVoxelsPerTile {
		return nil, fmt.Errorf("%w: voxelsPerTile fora do intervalo: %d", ErrCorruptTile, voxelsPerTile)
	}

	a := NewTileAccessor(voxelsPerTile)
	if err := a.decodeBody(dec); err != nil {
		return nil, err
	}
	return a, nil
}

// decodeBody lê os campos após voxelsPerTile, na ordem do contrato.
func (a *TileAccessor) decodeBody(dec *gob.Decoder) error {
	var numNonEmpty, numNonEmptyLod int32
	if err := dec.Decode(&numNonEmpty); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptTile, err)
	}
	if err := dec.Decode(&numNonEmptyLod); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptTile, err)
	}

	var calculateLod bool
	if err := dec.Decode(&calculateLod); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptTile, err)
	}
	// A flag vem antes do payload: SetCalculateLod deixa os arrays no estado
	// consistente que os campos seguintes assumem.
	a.SetCalculateLod(calculateLod)

	// Decodifica direto nos arrays já dimensionados: um payload legítimo reusa
	// a alocação existente em vez de criar uma segunda cópia, e um blob
	// corrompido não dita o tamanho da alocação.
	if err := dec.Decode(&a.voxels); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptTile, err)
	}
	if int32(len(a.voxels)) != a.dims.VoxelCount {
		return fmt.Errorf("%w: array principal com %d células, esperado %d",
			ErrCorruptTile, len(a.voxels), a.dims.VoxelCount)
	}

	if calculateLod {
		if err := dec.Decode(&a.voxelsLod); err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptTile, err)
		}
		if int32(len(a.voxelsLod)) != a.dims.VoxelCountLodAll {
			return fmt.Errorf("%w: planos LOD com %d células, esperado %d",
				ErrCorruptTile, len(a.voxelsLod), a.dims.VoxelCountLodAll)
		}
	}

	a.numNonEmpty = numNonEmpty
	a.numNonEmptyLod = numNonEmptyLod
	return nil
}

// GobEncode permite embutir um TileAccessor em grafos gob maiores.
func (a *TileAccessor) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := a.EncodeSnapshot(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode reconstrói o accessor no lugar, inclusive as dimensões.
func (a *TileAccessor) GobDecode(data []byte) error {
	decoded, err := DecodeSnapshot(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*a = *decoded
	return nil
}
