package settings

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWindowKeyRoundTrip(t *testing.T) {
	for _, index := range []int{0, 1, 7, 42} {
		key := WindowKey(index)
		parsed, err := ParseWindowKey(key)
		require.NoError(t, err)
		require.Equal(t, index, parsed)
	}
}

func TestParseWindowKeyRejectsBadKeys(t *testing.T) {
	for _, key := range []string{"", "win-", "win--1", "win-01", "window-0", "win-0x", "WIN-0"} {
		_, err := ParseWindowKey(key)
		require.Error(t, err, "key %q", key)
		require.ErrorIs(t, err, ErrInvariantViolation)
	}
}

func TestRecentFileMarshalsAsPair(t *testing.T) {
	entry := RecentFile{
		Time: time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC),
		Path: "/docs/report.docx",
	}

	payload, err := json.Marshal(entry)
	require.NoError(t, err)
	require.JSONEq(t, `["2026-08-24T10:30:00Z", "/docs/report.docx"]`, string(payload))

	var decoded RecentFile
	require.NoError(t, json.Unmarshal(payload, &decoded))
	require.Equal(t, entry, decoded)
}

func TestRecentFileRejectsMalformedEntries(t *testing.T) {
	cases := []string{
		`["only-one"]`,
		`["a", "b", "c"]`,
		`["not-a-time", "/docs/x.docx"]`,
		`{"time": "2026-08-24T10:30:00Z"}`,
	}
	for _, raw := range cases {
		var decoded RecentFile
		err := json.Unmarshal([]byte(raw), &decoded)
		require.Error(t, err, "input %s", raw)
	}
}

func TestConfigRecordIsEmpty(t *testing.T) {
	require.True(t, ConfigRecord{}.IsEmpty())
	require.False(t, ConfigRecord{Version: "0.0.1"}.IsEmpty())
	require.False(t, ConfigRecord{Windows: map[string]WindowRecord{"win-0": {}}}.IsEmpty())
}
