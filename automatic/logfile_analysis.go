package automatic

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/domino14/gridgame/board"
)

// AnalyzeLogFile reads a turn log written by StartCompVComp and tallies
// the games that finished in it.
func AnalyzeLogFile(filepath string) (*Summary, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	r := csv.NewReader(file)

	// Record looks like:
	// playerID,gameID,turn,token,column,row,result
	var results []GameResult
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == "playerID" {
			continue
		}
		if len(record) != 7 {
			return nil, fmt.Errorf("line %v: want 7 fields, got %d", record, len(record))
		}
		if record[6] == "" {
			continue
		}
		turns, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, err
		}
		res := GameResult{GameID: record[1], Turns: turns}
		if record[6] == "win" {
			var t board.Token
			ok := len(record[3]) == 1
			if ok {
				t, ok = board.TokenFromRune(rune(record[3][0]))
			}
			if !ok || !t.IsPlayer() {
				return nil, fmt.Errorf("game %s: bad winner %q", record[1], record[3])
			}
			res.Winner = t
		}
		results = append(results, res)
	}
	return Summarize(results), nil
}
