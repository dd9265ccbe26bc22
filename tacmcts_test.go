package tacmcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/alphabeth/tacmcts/tac"
)

func testConfig() Config {
	conf := DefaultConfig()
	conf.Playouts = 30
	conf.Threads = 2
	conf.MoveLimit = 3
	return conf
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.Playouts = 0
	bad.Threads = -1
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "playout budget")
	assert.Contains(t, err.Error(), "thread count")
}

func TestNewAgentRejectsBadConfig(t *testing.T) {
	conf := testConfig()
	conf.MCTS.MaxPlayoutLength = 0
	board := tac.NewBoard(rand.New(rand.NewSource(1)))
	_, err := NewAgent(board, tac.Black, conf)
	require.Error(t, err)
}

func TestAgentSearchAndObserve(t *testing.T) {
	board := tac.NewBoard(rand.New(rand.NewSource(1)))
	agent, err := NewAgent(board, board.CurrentPlayer(), testConfig())
	require.NoError(t, err)

	mv, ok := agent.Search()
	require.True(t, ok)

	board.MakeMove(mv)
	agent.Observe(mv)

	got := agent.Manager.RootState().(*tac.Board)
	assert.Equal(t, board.CurrentPlayer(), got.CurrentPlayer())
	assert.Equal(t, board.MoveNumber(), got.MoveNumber())
}

func TestArenaPlaysToMoveLimit(t *testing.T) {
	board := tac.NewBoard(rand.New(rand.NewSource(2)))
	arena := NewArena(board, testConfig())

	_, ok, err := arena.Play()
	require.NoError(t, err)
	assert.False(t, ok) // three moves never finish a round
	assert.NotEmpty(t, arena.Log())
	assert.Equal(t, 3, board.MoveNumber())
}
