package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/westonized/ballin-octo-wookie/internal/cards"
	"github.com/westonized/ballin-octo-wookie/internal/session"
)

const (
	remainderToken = "50:D8S8D9S9DTSTDJSJDQSQSKCAHAC2H2C3H3C4H4C5H5C6H6C7H7,"
	receivingToken = "54:H8C8H9C9HTCTHJCJHQCQHKCKDASAD2DKS2D3S3D4S4D5S5D6S6D7S7,"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func TestNewCmd(t *testing.T) {
	out, err := execute(t, "new")
	require.NoError(t, err)
	require.Equal(t, cards.NewDeck().Serialize()+"\n", out)
}

func TestManipulateCmd(t *testing.T) {
	out, err := execute(t, "manipulate", cards.NewDeck().Serialize(),
		"--op", "cut:20", "--op", "riffle", "--op", "split:26")
	require.NoError(t, err)

	got := lines(out)
	require.Len(t, got, 2)

	rest, err := cards.Load(got[0])
	require.NoError(t, err)
	packet, err := cards.Load(got[1])
	require.NoError(t, err)
	require.Equal(t, 26, rest.Count())
	require.Equal(t, 26, packet.Count())
}

func TestManipulateCmd_ImperfectIsSeeded(t *testing.T) {
	args := []string{"manipulate", cards.NewDeck().Serialize(), "--op", "imperfect", "--seed", "abc"}
	a, err := execute(t, args...)
	require.NoError(t, err)
	b, err := execute(t, args...)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestManipulateCmd_Errors(t *testing.T) {
	deck := cards.NewDeck().Serialize()
	for _, op := range []string{"shuffle", "cut", "cut:x", "riffle:2", "cut:99"} {
		_, err := execute(t, "manipulate", deck, "--op", op)
		require.Error(t, err, op)
	}
	_, err := execute(t, "manipulate", "junk", "--op", "riffle")
	require.ErrorIs(t, err, cards.ErrDeserialization)
}

func TestFindCmd(t *testing.T) {
	for _, packet := range []string{remainderToken, receivingToken} {
		out, err := execute(t, "find", packet, "--knowledge", cards.NewDeck().Serialize())
		require.NoError(t, err)
		require.Equal(t, "DK\n", out)
	}
}

func TestFindCmd_BadLogFormatFromEnv(t *testing.T) {
	t.Setenv("CARDTRICK_LOG_FORMAT", "xml")
	_, err := execute(t, "find", receivingToken, "--knowledge", cards.NewDeck().Serialize())
	require.ErrorContains(t, err, "unknown log format")
}

func TestPerformCmd(t *testing.T) {
	out, err := execute(t, "perform", cards.NewDeck().Serialize(), remainderToken)
	require.NoError(t, err)
	got := lines(out)
	require.Len(t, got, 2)
	require.Equal(t, "DK taken", got[0])

	// Feed the knowledge into the next call.
	out, err = execute(t, "perform", cards.NewDeck().Serialize(), receivingToken,
		"--knowledge", got[1], "--json")
	require.NoError(t, err)

	var res struct {
		Card      string `json:"card"`
		Role      string `json:"role"`
		Knowledge string `json:"knowledge"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Equal(t, "DK", res.Card)
	require.Equal(t, "inserted", res.Role)
	require.True(t, strings.HasPrefix(res.Knowledge, got[1]))
}

func TestSimulateCmd(t *testing.T) {
	out, err := execute(t, "simulate", "--sessions", "3", "--runs", "5", "--seed", "fixed", "--json")
	require.NoError(t, err)

	var rep session.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Equal(t, 5, rep.Runs)
	require.Equal(t, []int{5, 5, 5}, rep.Hits)

	out, err = execute(t, "simulate", "--sessions", "2", "--runs", "1", "--seed", "fixed", "--perfect")
	require.NoError(t, err)
	require.Equal(t, []string{"session 1: 1/1 (100.0%)", "session 2: 1/1 (100.0%)"}, lines(out))
}

func TestSimulateCmd_Errors(t *testing.T) {
	_, err := execute(t, "simulate", "--runs", "0")
	require.Error(t, err)

	_, err = execute(t, "simulate", "--cut-min", "5", "--cut-max", "5", "--runs", "1", "--sessions", "1")
	require.ErrorIs(t, err, cards.ErrOutOfRange)

	_, err = execute(t, "simulate", "--log-level", "loud", "--runs", "1")
	require.Error(t, err)
}
