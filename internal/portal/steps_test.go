package portal_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/afip-submitter/internal/model"
	"github.com/rezonia/afip-submitter/internal/portal"
)

func TestClassifyRejection(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		category model.RejectionCategory
	}{
		{"pdf marker", "error <!--pdferror--> al imprimir", model.RejectionPDFRender},
		{"cae marker", "<!--caeerror-->", model.RejectionAuthorizationCode},
		{"additional data marker", "x<!--datosadicionaleserror-->y", model.RejectionSupplementaryData},
		{"no marker", "sistema no disponible", model.RejectionUnknown},
		{"empty", "", model.RejectionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rejection := portal.ClassifyRejection(tt.message)
			require.NotNil(t, rejection)
			assert.Equal(t, tt.category, rejection.Category)
			assert.NotEmpty(t, rejection.Error())
		})
	}
}

func TestClassifyRejection_UnknownKeepsPortalMessage(t *testing.T) {
	rejection := portal.ClassifyRejection("mantenimiento programado")
	assert.Equal(t, "Unknown error: mantenimiento programado", rejection.Error())
}

func TestSimulator_SessionAccounting(t *testing.T) {
	sim := portal.NewSimulator()
	ctx := context.Background()

	s1, err := sim.Acquire(ctx)
	require.NoError(t, err)
	s2, err := sim.Acquire(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, s1.ID(), s2.ID())
	assert.Equal(t, 2, sim.OpenSessions())

	sim.Release(s1)
	sim.Release(s2)
	assert.Equal(t, 2, sim.AcquireCount())
	assert.Equal(t, 2, sim.ReleaseCount())
	assert.Equal(t, 0, sim.OpenSessions())
}

func TestSimulator_SessionLimit(t *testing.T) {
	sim := portal.NewSimulator()
	sim.SetSessionLimit(1)
	ctx := context.Background()

	s1, err := sim.Acquire(ctx)
	require.NoError(t, err)

	_, err = sim.Acquire(ctx)
	assert.Error(t, err)

	sim.Release(s1)
	_, err = sim.Acquire(ctx)
	assert.NoError(t, err)
}

func TestSimulator_ConflictDetection(t *testing.T) {
	sim := portal.NewSimulator()
	ctx := context.Background()

	s1, err := sim.Acquire(ctx)
	require.NoError(t, err)
	s2, err := sim.Acquire(ctx)
	require.NoError(t, err)

	require.NoError(t, sim.Authenticate(ctx, s1, "20111111112"))
	require.NoError(t, sim.Authenticate(ctx, s2, "20111111112"))

	assert.Equal(t, []string{"20111111112"}, sim.IssuerConflicts())
}

func TestSimulator_ConfirmProducesDocument(t *testing.T) {
	sim := portal.NewSimulator()
	ctx := context.Background()

	s, err := sim.Acquire(ctx)
	require.NoError(t, err)
	require.NoError(t, sim.Authenticate(ctx, s, "20111111112"))

	outcome, err := sim.Confirm(ctx, s, portal.ConfirmRequest{IssuerCUIT: "20111111112"})
	require.NoError(t, err)
	assert.NotEmpty(t, outcome.DocumentID)
	assert.Contains(t, outcome.Filename, "20111111112_")
	assert.NotEmpty(t, outcome.PDF)
}

func TestSimulator_RejectionFromConfirm(t *testing.T) {
	sim := portal.NewSimulator()
	sim.RejectConfirmation("falla <!--caeerror-->")
	ctx := context.Background()

	s, err := sim.Acquire(ctx)
	require.NoError(t, err)

	_, err = sim.Confirm(ctx, s, portal.ConfirmRequest{IssuerCUIT: "20111111112"})
	require.Error(t, err)

	var rejection *model.BusinessRejection
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, model.RejectionAuthorizationCode, rejection.Category)
}
