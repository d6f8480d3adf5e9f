package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/euid"
	"github.com/outofforest/euid/pkg/test"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	root := newRootCommand()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(test.Context(t))
	return out.String(), err
}

func TestCreateCommand(t *testing.T) {
	requireT := require.New(t)

	out, err := execute(t, "", "create", "--count", "5", "--extension", "7")
	requireT.NoError(err)
	lines := strings.Fields(out)
	requireT.Len(lines, 5)

	ids, err := euid.ParseAll(lines...)
	requireT.NoError(err)
	for i, id := range ids {
		ext, ok := id.Extension()
		requireT.True(ok)
		requireT.Equal(uint16(7), ext)
		if i > 0 {
			requireT.Equal(1, id.Compare(ids[i-1]))
		}
	}

	_, err = execute(t, "", "create", "--extension", "32768")
	requireT.ErrorIs(err, euid.ErrExtensionOverflow)
}

func TestCreateCommandNoChecksum(t *testing.T) {
	requireT := require.New(t)

	out, err := execute(t, "", "--no-checksum", "create")
	requireT.NoError(err)
	text := strings.TrimSpace(out)
	requireT.Len(text, euid.EncodedSize)
	requireT.True(strings.HasSuffix(text, "Z"))
	_, err = euid.Parse(text)
	requireT.NoError(err)
}

func TestFromCommand(t *testing.T) {
	requireT := require.New(t)

	out, err := execute(t, "", "from", "0")
	requireT.NoError(err)
	requireT.Equal(strings.Repeat("0", 27)+"\n", out)

	out, err = execute(t, "", "from", "340282366920938463463374607431768211455")
	requireT.NoError(err)
	requireT.Equal(strings.Repeat("Z", 25)+"W3\n", out)

	_, err = execute(t, "", "from", "340282366920938463463374607431768211456")
	requireT.ErrorIs(err, euid.ErrOverflow)
	_, err = execute(t, "", "from", "ten")
	requireT.Error(err)
}

func TestDecodeCommand(t *testing.T) {
	requireT := require.New(t)

	maxText := strings.Repeat("Z", 25) + "W3"
	out, err := execute(t, "", "decode", maxText)
	requireT.NoError(err)
	requireT.Contains(out, "decimal:   340282366920938463463374607431768211455")
	requireT.Contains(out, "extension: 32767")
	requireT.Contains(out, "uuid:      ffffffff-ffff-ffff-ffff-ffffffffffff")

	zeroText := strings.Repeat("0", 27)
	out, err = execute(t, "log line "+zeroText+" and "+maxText+"\n", "decode")
	requireT.NoError(err)
	requireT.Contains(out, zeroText+"\n")
	requireT.Contains(out, maxText+"\n")
	requireT.Contains(out, "extension: none")

	_, err = execute(t, "", "decode", "0000")
	requireT.ErrorIs(err, euid.ErrInvalidLength)
}

func TestBatchCommand(t *testing.T) {
	requireT := require.New(t)

	out, err := execute(t, "", "batch", "--count", "20", "--shards", "4")
	requireT.NoError(err)
	lines := strings.Fields(out)
	requireT.Len(lines, 20)
	for i := 1; i < len(lines); i++ {
		requireT.Less(lines[i-1], lines[i])
	}
}
