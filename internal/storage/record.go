package storage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcoot/guessgame/internal/model"
)

const recordFields = 4

// EncodeRecord serializes a record as name,gamesPlayed,totalGuesses,invalidGuesses.
// Names are restricted to letters so no escaping is needed.
func EncodeRecord(r *model.PlayerRecord) string {
	return r.Name + "," +
		strconv.Itoa(r.GamesPlayed) + "," +
		strconv.Itoa(r.TotalGuesses) + "," +
		strconv.Itoa(r.InvalidGuesses)
}

// DecodeRecord parses a single serialized line. A trailing carriage return is ignored.
func DecodeRecord(line string) (*model.PlayerRecord, error) {
	fields := strings.Split(strings.TrimRight(line, "\r"), ",")
	if len(fields) != recordFields || fields[0] == "" {
		return nil, fmt.Errorf("%w: %q", model.ErrMalformedRecord, line)
	}

	counts := make([]int, 0, recordFields-1)
	for _, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q", model.ErrMalformedRecord, line)
		}
		counts = append(counts, n)
	}

	return &model.PlayerRecord{
		Name:           fields[0],
		GamesPlayed:    counts[0],
		TotalGuesses:   counts[1],
		InvalidGuesses: counts[2],
	}, nil
}
