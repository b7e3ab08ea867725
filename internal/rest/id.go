package rest

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrIdOutOfRange reports a path id that no stored record can have, the id columns being int4.
var ErrIdOutOfRange = errors.New("id out of range")

func ParseId(value string) (int, error) {
	id, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %s", ErrIdOutOfRange, value)
		}
		return 0, err
	}
	return int(id), nil
}
