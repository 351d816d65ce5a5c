package preview

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleInput(t *testing.T) {
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(SampleInput(), &parsed))

	assert.NotEmpty(t, parsed["cwd"])
	model, ok := parsed["model"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Claude", model["display_name"])
}

func TestRun_Success(t *testing.T) {
	script := `#!/bin/sh
input=$(cat)
printf 'rendered: %s' "${#input}"
exit 0
`
	result, err := Run(context.Background(), script, []byte(`{"cwd":"/tmp"}`))
	require.NoError(t, err)

	assert.True(t, result.Pass())
	assert.Equal(t, 0, result.ExitCode)
	assert.False(t, result.TimedOut)
	assert.True(t, strings.HasPrefix(result.Output, "rendered: "))
	assert.Greater(t, result.Duration, time.Duration(0))
}

func TestRun_FailingScript(t *testing.T) {
	script := `#!/bin/sh
echo "boom" >&2
exit 3
`
	result, err := Run(context.Background(), script, nil)
	require.NoError(t, err, "a failing script is a result, not an error")

	assert.False(t, result.Pass())
	assert.Equal(t, 3, result.ExitCode)
	assert.Contains(t, result.Stderr, "boom")
}

func TestRun_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	script := "#!/bin/sh\nsleep 10\n"
	result, err := Run(ctx, script, nil)
	if err == nil {
		assert.False(t, result.Pass())
	}
}

func TestResult_WithinBudget(t *testing.T) {
	r := &Result{Duration: 50 * time.Millisecond}
	assert.True(t, r.WithinBudget())

	r = &Result{Duration: 150 * time.Millisecond}
	assert.False(t, r.WithinBudget())
}

func TestResult_Pass(t *testing.T) {
	assert.True(t, (&Result{}).Pass())
	assert.False(t, (&Result{ExitCode: 1}).Pass())
	assert.False(t, (&Result{TimedOut: true}).Pass())
}
