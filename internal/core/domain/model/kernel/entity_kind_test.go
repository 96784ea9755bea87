package kernel_test

import (
	"testing"

	"manufacturing/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestEntityKind_Validate(t *testing.T) {
	for _, kind := range []kernel.EntityKind{
		kernel.KindDesignJob,
		kernel.KindWorkOrder,
		kernel.KindPurchaseOrder,
		kernel.KindOrderItem,
	} {
		assert.NoError(t, kind.Validate(), "kind %s should be valid", kind)
	}

	assert.Error(t, kernel.EntityKind("supplier").Validate())
	assert.Error(t, kernel.EntityKind("").Validate())
	assert.Error(t, kernel.EntityKind("DESIGN_JOB").Validate())
}

func TestEntityKind_String(t *testing.T) {
	assert.Equal(t, "design_job", kernel.KindDesignJob.String())
	assert.Equal(t, "work_order", kernel.KindWorkOrder.String())
}
