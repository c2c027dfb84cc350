package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	args := []string{"-a", "http://gw:8089", "-x", "junk", "-f", "state.db"}
	got := FilterArgs(args, []string{"-a", "-f"})
	assert.Equal(t, []string{"-a", "http://gw:8089", "-f", "state.db"}, got)
}

func TestFilterArgs_JoinedValue(t *testing.T) {
	args := []string{"--gateway=http://gw", "-a=x", "--other=y"}
	got := FilterArgs(args, []string{"--gateway", "-a"})
	assert.Equal(t, []string{"--gateway=http://gw", "-a=x"}, got)
}

func TestFilterArgs_FlagFollowedByFlag(t *testing.T) {
	args := []string{"-a", "-f", "state.db"}
	got := FilterArgs(args, []string{"-a"})
	assert.Equal(t, []string{"-a"}, got)
}

func TestFilterArgs_Empty(t *testing.T) {
	got := FilterArgs(nil, []string{"-a"})
	assert.NotNil(t, got)
	assert.Len(t, got, 0)
}

func TestJSONConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"cofrap", "-c", "conf.json", "-a", "http://gw"}
	assert.Equal(t, "conf.json", JSONConfigFlags())

	os.Args = []string{"cofrap", "-a", "http://gw"}
	assert.Equal(t, "", JSONConfigFlags())
}
