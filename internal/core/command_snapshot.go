package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"rostercore/internal/blob"
	"rostercore/pkg/domain"
)

const (
	WordExport = "export"
	WordImport = "import"

	// SnapshotPrefix is the blob key prefix export writes under.
	SnapshotPrefix = "snapshots/"
	snapshotLayout = "20060102T150405.000000000Z"
)

var errNoBlobStore = domain.CommandError{Message: "Blob storage is not configured", Kind: domain.ErrInvariant}

// ExportCommand writes the current store as JSON to blob storage. Export keys
// are unique per instant and never overwritten.
type ExportCommand struct{}

func (ExportCommand) Word() string { return WordExport }

func (ExportCommand) Execute(ctx context.Context, env *Env) (CommandResult, error) {
	if env.Blobs == nil {
		return CommandResult{}, errNoBlobStore
	}
	snap := env.Model.ExportState()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return CommandResult{}, fmt.Errorf("encode snapshot: %w", err)
	}
	key := SnapshotPrefix + env.now().UTC().Format(snapshotLayout) + ".json"
	info, err := env.Blobs.Put(ctx, key, bytes.NewReader(data), blob.PutOptions{
		ContentType: "application/json",
		Metadata: map[string]string{
			"persons": strconv.Itoa(len(snap.Persons)),
			"events":  strconv.Itoa(len(snap.Events)),
		},
	})
	if err != nil {
		return CommandResult{}, fmt.Errorf("write snapshot: %w", err)
	}
	location := info.Key
	if url, err := env.Blobs.PresignURL(ctx, key, blob.SignedURLOptions{}); err == nil {
		location = url
	} else if !errors.Is(err, blob.ErrUnsupported) {
		return CommandResult{}, fmt.Errorf("presign snapshot: %w", err)
	}
	return readOnly("Exported %d persons and %d events to %s", len(snap.Persons), len(snap.Events), location), nil
}

// ImportCommand replaces the store with a snapshot from blob storage and
// clears history, since recorded commands refer to the replaced entities.
type ImportCommand struct {
	key string
}

func NewImportCommand(key string) *ImportCommand {
	return &ImportCommand{key: key}
}

func (c *ImportCommand) Word() string { return WordImport }

func (c *ImportCommand) Execute(ctx context.Context, env *Env) (CommandResult, error) {
	if env.Blobs == nil {
		return CommandResult{}, errNoBlobStore
	}
	_, rc, err := env.Blobs.Get(ctx, c.key)
	if errors.Is(err, blob.ErrNotFound) {
		return CommandResult{}, domain.CommandError{Message: fmt.Sprintf("Snapshot %s does not exist", c.key), Kind: domain.ErrNotFound}
	}
	if err != nil {
		return CommandResult{}, fmt.Errorf("read snapshot: %w", err)
	}
	defer func() { _ = rc.Close() }()
	var snap domain.Snapshot
	if err := json.NewDecoder(rc).Decode(&snap); err != nil {
		return CommandResult{}, domain.CommandError{Message: fmt.Sprintf("Snapshot %s is not valid JSON: %v", c.key, err), Kind: domain.ErrValidation}
	}
	if err := env.Model.ImportState(snap); err != nil {
		return CommandResult{}, err
	}
	env.History.Clear()
	return feedback("Imported %d persons and %d events from %s", len(snap.Persons), len(snap.Events), c.key), nil
}
