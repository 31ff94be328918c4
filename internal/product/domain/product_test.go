package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tair/warehouse-inventory/pkg/apperror"
)

func TestProductValidate(t *testing.T) {
	long := strings.Repeat("ä", MaxDescriptionLength)

	tests := []struct {
		name    string
		p       Product
		wantErr bool
	}{
		{"valid", Product{Name: "Bolt", SKU: "B-1"}, false},
		{"description at limit", Product{Name: "Bolt", SKU: "B-1", Description: long}, false},
		{"description too long", Product{Name: "Bolt", SKU: "B-1", Description: long + "x"}, true},
		{"missing name", Product{SKU: "B-1"}, true},
		{"missing sku", Product{Name: "Bolt"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProductNormalize(t *testing.T) {
	p := Product{Name: "  Bolt ", SKU: " B-1\t"}
	p.Normalize()
	assert.Equal(t, "Bolt", p.Name)
	assert.Equal(t, "B-1", p.SKU)

	blank := Product{Name: "   ", SKU: "x"}
	blank.Normalize()
	assert.ErrorIs(t, blank.Validate(), apperror.ErrInvalidArgument)
}
