package ledger

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a money value sent by clients either as a JSON number or as a
// numeric string such as "12.50", the value of an HTML number input.
type Amount float64

// UnmarshalJSON accepts a number or a quoted number. Any other string decodes
// to NaN so validation reports it as an invalid amount.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			v = math.NaN()
		}
		*a = Amount(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(bytes.TrimSpace(data), &v); err != nil {
		return err
	}
	*a = Amount(v)
	return nil
}
