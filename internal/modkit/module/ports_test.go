package module

import (
	"testing"

	"rolegate/internal/core/principal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountsPorts struct {
	Gate      Gate
	Validator func(string) error
	internal  Gate
}

func TestPortsOf(t *testing.T) {
	t.Parallel()
	gate := roleGate{allow: principal.RoleTechnician}

	cases := []struct {
		name  string
		ports any
		found bool
	}{
		{"no ports", nil, false},
		{"bundle is the port", Gate(gate), true},
		{"exported field", accountsPorts{Gate: gate}, true},
		{"pointer bundle", &accountsPorts{Gate: gate}, true},
		{"nil pointer bundle", (*accountsPorts)(nil), false},
		{"unexported field only", accountsPorts{internal: gate}, false},
		{"scalar", 42, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := PortsOf[Gate](&stubModule{name: "accounts", ports: tc.ports})
			require.Equal(t, tc.found, ok)
			if ok {
				assert.True(t, got.Admit(principal.RoleTechnician))
				assert.False(t, got.Admit(principal.RoleDiaryUser))
			}
		})
	}
}

func TestPortsOf_WholeBundle(t *testing.T) {
	t.Parallel()
	bundle := accountsPorts{Gate: roleGate{allow: principal.RoleOrgAdmin}}
	got, ok := PortsOf[accountsPorts](&stubModule{name: "accounts", ports: bundle})
	require.True(t, ok)
	assert.True(t, got.Gate.Admit(principal.RoleOrgAdmin))
}

func TestMustPortsOf(t *testing.T) {
	t.Parallel()
	m := &stubModule{name: "billing"}
	assert.PanicsWithValue(t, "module: billing does not provide module.Gate", func() {
		_ = MustPortsOf[Gate](m)
	})

	m.ports = accountsPorts{Gate: roleGate{allow: principal.RoleDiaryUser}}
	assert.True(t, MustPortsOf[Gate](m).Admit(principal.RoleDiaryUser))
}
