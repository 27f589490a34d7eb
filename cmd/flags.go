package cmd

import (
	"fmt"
	"strings"

	"github.com/hansbonini/cditools/pkg/cdi"
	"github.com/hansbonini/cditools/pkg/common"
	"github.com/spf13/pflag"
)

// anyFile is the --file value that matches every file number
const anyFile = -1

// addSelectionFlags registers the channel and file number flags
func addSelectionFlags(fs *pflag.FlagSet) {
	fs.Uint8P("channel", "c", 0, "Channel number (0-31)")
	fs.Int16P("file", "f", anyFile, "File number (-1 matches every file)")
}

// selectionFromFlags reads the flags registered by addSelectionFlags
func selectionFromFlags(fs *pflag.FlagSet) (uint8, *uint8, error) {
	channel, err := fs.GetUint8("channel")
	if err != nil {
		return 0, nil, fmt.Errorf("error getting channel flag: %w", err)
	}
	file, err := fs.GetInt16("file")
	if err != nil {
		return 0, nil, fmt.Errorf("error getting file flag: %w", err)
	}
	if file == anyFile {
		return channel, nil, nil
	}
	number, err := common.SafeIntToUint8(int(file))
	if err != nil {
		return 0, nil, fmt.Errorf("invalid file number: %w", err)
	}
	return channel, &number, nil
}

// sectorTypeValue is a pflag.Value accepting a sector category name.
// The zero value matches every category.
type sectorTypeValue struct {
	set bool
	t   cdi.SectorType
}

func (v *sectorTypeValue) String() string {
	if !v.set {
		return "all"
	}
	return strings.ToLower(v.t.String())
}

func (v *sectorTypeValue) Set(s string) error {
	if strings.EqualFold(s, "all") {
		v.set = false
		return nil
	}
	t, err := cdi.ParseSectorType(s)
	if err != nil {
		return err
	}
	v.set, v.t = true, t
	return nil
}

func (v *sectorTypeValue) Type() string { return "type" }

// matches reports whether s belongs to the selected category
func (v *sectorTypeValue) matches(s *cdi.Sector) bool {
	return !v.set || s.Type() == v.t
}
