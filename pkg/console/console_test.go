package console

import (
	"testing"

	"github.com/diillson/aws-workshop-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
)

func TestPauseNonInteractive(t *testing.T) {
	c := NewConsole()
	assert.False(t, c.IsNonInteractive())

	c.SetNonInteractive(true)
	assert.True(t, c.IsNonInteractive())

	// Sem apresentador no teclado a lição segue sozinha.
	assert.Equal(t, types.ContinueNext, c.Pause("Ready for the next concept?"))
}

func TestTableRender(t *testing.T) {
	c := NewConsole()

	table := c.CreateTable()
	table.AddColumn("State")
	table.AddColumn("Count")
	table.AddRow("running", 7)
	table.AddRow("stopped", 2)

	rendered := table.Render()
	assert.Contains(t, rendered, "State")
	assert.Contains(t, rendered, "running")
	assert.Contains(t, rendered, "7")
	assert.Contains(t, rendered, "stopped")
}

func TestTableCellsAreStringified(t *testing.T) {
	c := NewConsole()

	table := c.CreateTable()
	table.AddColumn("Region")
	table.AddColumn("Cost")
	table.AddRow("us-east-1", 120.5)

	rendered := table.Render()
	assert.Contains(t, rendered, "120.5")
}
