package logsvc

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/lotus/core"
)

func newTestLogger(buf *bytes.Buffer) *RollbarLogger {
	logger := NewRollbarLogger(log.New(buf, "TEST : ", 0), &core.Config{Env: "TEST", Build: "test"})
	logger.Enable(false)
	return logger
}

func TestRollbarLogger_prepare(t *testing.T) {
	logger := newTestLogger(new(bytes.Buffer))
	err := errors.New("boom")

	tests := []struct {
		name string
		args []interface{}
		want []interface{}
	}{
		{name: "message only", want: []interface{}{"msg"}},
		{name: "error", args: []interface{}{err}, want: []interface{}{"msg", err}},
		{
			name: "extras are merged after the other args",
			args: []interface{}{
				map[string]interface{}{"product_id": 1, "ticket": 2},
				err,
				map[string]interface{}{"ticket": 3},
			},
			want: []interface{}{"msg", err, map[string]interface{}{"product_id": 1, "ticket": 3}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.prepare("msg", tt.args))
		})
	}
}

func TestRollbarLogger_print(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := newTestLogger(buf)

	logger.Warn("created product has no ID", map[string]interface{}{"placeholder": 4})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"TEST : created product has no ID",
		"TEST : map[placeholder:4]",
	}, lines)
}
