package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/playerregistry/internal/api"
	"github.com/mcoot/playerregistry/internal/api/response"
	"github.com/mcoot/playerregistry/internal/factory"
	"github.com/mcoot/playerregistry/internal/model"
	"github.com/mcoot/playerregistry/internal/testutil"
)

func newTestAPI(t *testing.T, adminTokenHash string) (*httptest.Server, *factory.TestApp) {
	t.Helper()

	app := factory.NewTestApp()
	srv := httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		PlayerService:  app.PlayerService,
		AdminTokenHash: adminTokenHash,
	}))
	t.Cleanup(srv.Close)
	return srv, app
}

// execute runs playerctl with args, isolated from the caller's home config
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func createArgs(server, name, race string, experience string) []string {
	return []string{
		"--server", server, "-o", "json", "players", "create",
		"--name", name, "--race", race, "--profession", "warrior",
		"--birthday", "2010-01-01", "--experience", experience,
	}
}

func storedCount(t *testing.T, app *factory.TestApp) int {
	t.Helper()
	players, err := app.Memory.ListPlayers(context.Background())
	require.NoError(t, err)
	return len(players)
}

func decodePlayer(t *testing.T, out string) response.Player {
	t.Helper()
	var p response.Player
	require.NoError(t, json.Unmarshal([]byte(out), &p), out)
	return p
}

func TestHealth(t *testing.T) {
	srv, _ := newTestAPI(t, "")

	out, err := execute(t, "--server", srv.URL, "health")
	require.NoError(t, err)
	assert.Equal(t, "Status: ok\n", out)
}

func TestPlayerLifecycle(t *testing.T) {
	srv, _ := newTestAPI(t, "")

	out, err := execute(t, createArgs(srv.URL, "Ardan", "elf", "750")...)
	require.NoError(t, err)
	created := decodePlayer(t, out)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "ELF", created.Race)
	assert.Equal(t, "", created.Title)
	assert.Equal(t, 3, created.Level)
	assert.Equal(t, 250, created.UntilNextLevel)
	assert.Equal(t, time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC), created.BirthdayTime())

	out, err = execute(t, "--server", srv.URL, "-o", "json", "players", "update", "1", "--experience", "1000", "--title", "the Bold")
	require.NoError(t, err)
	updated := decodePlayer(t, out)
	assert.Equal(t, "Ardan", updated.Name)
	assert.Equal(t, "the Bold", updated.Title)
	assert.Equal(t, 4, updated.Level)
	assert.Equal(t, 500, updated.UntilNextLevel)

	out, err = execute(t, "--server", srv.URL, "players", "get", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Name:")
	assert.Contains(t, out, "Ardan")
	assert.Contains(t, out, "2010-01-01")
	assert.Contains(t, out, "4 (500 to next)")

	out, err = execute(t, "--server", srv.URL, "players", "delete", "1")
	require.NoError(t, err)
	assert.Equal(t, "Deleted player 1\n", out)

	_, err = execute(t, "--server", srv.URL, "players", "get", "1")
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusNotFound, reqErr.Status)
	assert.Equal(t, "PLAYER_NOT_FOUND", reqErr.Code)
}

func TestCreateRejectedByServer(t *testing.T) {
	srv, _ := newTestAPI(t, "")

	_, err := execute(t, createArgs(srv.URL, "Ardan", "elf", "10000001")...)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadRequest, reqErr.Status)
	assert.Equal(t, "INVALID_PLAYER", reqErr.Code)
}

func TestCreateRequiresFlags(t *testing.T) {
	srv, _ := newTestAPI(t, "")

	_, err := execute(t, "--server", srv.URL, "players", "create", "--name", "Ardan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestInvalidID(t *testing.T) {
	srv, _ := newTestAPI(t, "")

	for _, id := range []string{"0", "-5", "abc"} {
		_, err := execute(t, "--server", srv.URL, "players", "get", "--", id)
		assert.ErrorIs(t, err, model.ErrInvalidPlayerID, id)
	}
}

func TestListAndCount(t *testing.T) {
	srv, _ := newTestAPI(t, "")

	for _, p := range []struct{ name, race, xp string }{
		{"Ardan", "elf", "750"},
		{"Borin", "dwarf", "100"},
		{"Celia", "elf", "5000"},
		{"Dorn", "orc", "0"},
	} {
		_, err := execute(t, createArgs(srv.URL, p.name, p.race, p.xp)...)
		require.NoError(t, err)
	}

	t.Run("default page as table", func(t *testing.T) {
		out, err := execute(t, "--server", srv.URL, "players", "list")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 4)
		assert.True(t, strings.HasPrefix(lines[0], "ID"))
		assert.Contains(t, lines[1], "Ardan")
		assert.Contains(t, lines[3], "Celia")
	})

	t.Run("filters and order as json", func(t *testing.T) {
		out, err := execute(t, "--server", srv.URL, "-o", "json", "players", "list",
			"--race", "ELF", "--order", "experience", "--size", "10")
		require.NoError(t, err)
		var players []response.Player
		require.NoError(t, json.Unmarshal([]byte(out), &players))
		require.Len(t, players, 2)
		assert.Equal(t, "Ardan", players[0].Name)
		assert.Equal(t, "Celia", players[1].Name)
	})

	t.Run("second page", func(t *testing.T) {
		out, err := execute(t, "--server", srv.URL, "players", "list", "--page", "1")
		require.NoError(t, err)
		assert.Contains(t, out, "Dorn")
		assert.NotContains(t, out, "Ardan")
	})

	t.Run("empty result", func(t *testing.T) {
		out, err := execute(t, "--server", srv.URL, "players", "list", "--name", "Zed")
		require.NoError(t, err)
		assert.Equal(t, "No players found\n", out)
	})

	t.Run("count", func(t *testing.T) {
		out, err := execute(t, "--server", srv.URL, "players", "count")
		require.NoError(t, err)
		assert.Equal(t, "4\n", out)

		out, err = execute(t, "--server", srv.URL, "players", "count", "--min-level", "3")
		require.NoError(t, err)
		assert.Equal(t, "2\n", out)
	})

	t.Run("bad flags", func(t *testing.T) {
		_, err := execute(t, "--server", srv.URL, "players", "list", "--race", "goblin")
		assert.Error(t, err)
		_, err = execute(t, "--server", srv.URL, "players", "list", "--order", "height")
		assert.Error(t, err)
		_, err = execute(t, "--server", srv.URL, "players", "list", "--size", "-1")
		assert.Error(t, err)
		_, err = execute(t, "--server", srv.URL, "players", "count", "--after", "yesterday")
		assert.Error(t, err)
	})
}

func TestAdminToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	srv, _ := newTestAPI(t, string(hash))

	_, err = execute(t, createArgs(srv.URL, "Ardan", "elf", "1")...)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnauthorized, reqErr.Status)

	_, err = execute(t, append(createArgs(srv.URL, "Ardan", "elf", "1"), "--token", "s3cret")...)
	require.NoError(t, err)

	t.Setenv("PLAYERCTL_TOKEN", "s3cret")
	_, err = execute(t, createArgs(srv.URL, "Borin", "dwarf", "1")...)
	require.NoError(t, err)

	// reads stay open
	out, err := execute(t, "--server", srv.URL, "players", "count")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestConfigFile(t *testing.T) {
	srv, _ := newTestAPI(t, "")

	path := filepath.Join(t.TempDir(), "playerctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: "+srv.URL+"\noutput: json\n"), 0o600))

	out, err := execute(t, "--config", path, "health")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, out)

	_, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "health")
	assert.Error(t, err)
}

func TestServerFromEnv(t *testing.T) {
	srv, _ := newTestAPI(t, "")
	t.Setenv("PLAYERCTL_SERVER", srv.URL)

	out, err := execute(t, "health")
	require.NoError(t, err)
	assert.Equal(t, "Status: ok\n", out)
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := execute(t, "-o", "xml", "health")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestImport(t *testing.T) {
	srv, app := newTestAPI(t, "")
	dir := t.TempDir()

	valid := filepath.Join(dir, "players.yaml")
	require.NoError(t, os.WriteFile(valid, []byte(`players:
  - name: Ardan
    title: of the North
    race: elf
    profession: WARRIOR
    birthday: 2010-01-01
    experience: 750
  - name: Borin
    race: DWARF
    profession: CLERIC
    birthday: "1262304000000"
    banned: true
    experience: 0
`), 0o600))

	out, err := execute(t, "--server", srv.URL, "players", "import", "--dry-run", valid)
	require.NoError(t, err)
	assert.Equal(t, "2 players valid\n", out)
	assert.Zero(t, storedCount(t, app))

	out, err = execute(t, "--server", srv.URL, "players", "import", valid)
	require.NoError(t, err)
	assert.Equal(t, "Imported 2 players\n", out)
	assert.Equal(t, 2, storedCount(t, app))

	p, err := app.PlayerService.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, p.Banned)
	assert.Equal(t, time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC), p.Birthday)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte(`players:
  - name: Ardan
    race: ELF
    profession: WARRIOR
    birthday: 2010-01-01
    experience: 750
  - name: ThisNameIsTooLong
    race: ELF
    profession: WARRIOR
    birthday: 2010-01-01
    experience: 750
`), 0o600))

	_, err = execute(t, "--server", srv.URL, "players", "import", invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "player 2")
	assert.ErrorIs(t, err, model.ErrInvalidPlayer)
	assert.Equal(t, 2, storedCount(t, app))
}

func TestSeed(t *testing.T) {
	srv, app := newTestAPI(t, "")

	out, err := execute(t, "--server", srv.URL, "players", "seed", "--count", "5", "--seed", "42")
	require.NoError(t, err)
	assert.Equal(t, "Created 5 players (seed 42)\n", out)
	assert.Equal(t, 5, storedCount(t, app))
}

func TestHashToken(t *testing.T) {
	out, err := execute(t, "hash-token", "--cost", "4", "s3cret")
	require.NoError(t, err)
	hash := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))

	t.Setenv("HOME", t.TempDir())
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetIn(strings.NewReader("piped\n"))
	cmd.SetArgs([]string{"hash-token", "--cost", "4"})
	require.NoError(t, cmd.Execute())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(buf.String())), []byte("piped")))
}

func TestClientUnreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "")
	_, err := c.Health(context.Background())
	require.Error(t, err)
	var reqErr *RequestError
	assert.False(t, errors.As(err, &reqErr))
}

func TestParseDate(t *testing.T) {
	want := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, s := range []string{"2010-01-01", "2010-01-01T00:00:00Z", "2010-01-01T02:00:00+02:00", "1262304000000"} {
		got, err := parseDate(s)
		require.NoError(t, err, s)
		assert.True(t, want.Equal(got), s)
	}

	_, err := parseDate("01/01/2010")
	assert.Error(t, err)
}
