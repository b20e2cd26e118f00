package storage

import (
	"encoding/json"
	"errors"

	"punnettlab/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

// Stamp sets the current schema and codec versions on a record.
func Stamp(record model.CrossRecord) model.CrossRecord {
	record.SchemaVersion = CurrentSchemaVersion
	record.CodecVersion = CurrentCodecVersion
	return record
}

func EncodeCross(r model.CrossRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeCross(data []byte) (model.CrossRecord, error) {
	var record model.CrossRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.CrossRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.CrossRecord{}, err
	}
	return record, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
