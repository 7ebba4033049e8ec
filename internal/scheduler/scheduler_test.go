// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olegiv/portfolio-go/internal/store"
)

func TestScheduler_StartStop(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "portfolio.db"), nil)
	require.NoError(t, err)
	defer st.Close()

	s := New(st, slog.Default())
	require.NoError(t, s.Start())
	s.Stop()
}
