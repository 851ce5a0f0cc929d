// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_UnsupportedType(t *testing.T) {
	_, err := Open("mysql", "root@/elections")
	assert.Error(t, err)
}

func TestCreateSchema_Idempotent(t *testing.T) {
	conn, err := Open(TypeSQLite, ":memory:")
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, CreateSchema(conn))
	require.NoError(t, CreateSchema(conn), "schema creation must be repeatable")

	for _, table := range []string{"election", "candidate", "ballot", "ranking", "result_snapshot"} {
		var count int
		err := conn.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count)
		require.NoError(t, err, table)
		assert.Zero(t, count, table)
	}
}
