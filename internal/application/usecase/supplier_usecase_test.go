package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/suministros-api/internal/application/dto"
	"github.com/jhoicas/suministros-api/internal/application/usecase"
	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
)

type memSupplierRepo struct {
	byID map[string]*entity.Supplier
}

func (r *memSupplierRepo) Create(s *entity.Supplier) error { r.byID[s.ID] = s; return nil }
func (r *memSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}
func (r *memSupplierRepo) GetByNIT(nit string) (*entity.Supplier, error) {
	for _, s := range r.byID {
		if s.NIT == nit {
			return s, nil
		}
	}
	return nil, nil
}
func (r *memSupplierRepo) ExistsByNIT(nit string) (bool, error) {
	s, _ := r.GetByNIT(nit)
	return s != nil, nil
}
func (r *memSupplierRepo) Update(s *entity.Supplier) error { r.byID[s.ID] = s; return nil }
func (r *memSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range r.byID {
		out = append(out, s)
	}
	return out, nil
}
func (r *memSupplierRepo) Delete(id string) error { delete(r.byID, id); return nil }

func TestSupplier_NITUnico(t *testing.T) {
	uc := usecase.NewSupplierUseCase(&memSupplierRepo{byID: map[string]*entity.Supplier{}})

	first, err := uc.Create(dto.CreateSupplierRequest{Company: "ACME S.A.S.", NIT: "900123456"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateSupplierRequest{Company: "Otra S.A.S.", NIT: "900123456"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// El mismo proveedor puede conservar su NIT en un update parcial.
	city := "Bogotá"
	updated, err := uc.Update(first.ID, dto.UpdateSupplierRequest{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "900123456", updated.NIT)
	assert.Equal(t, "Bogotá", updated.City)
}

func TestSupplier_CamposObligatorios(t *testing.T) {
	uc := usecase.NewSupplierUseCase(&memSupplierRepo{byID: map[string]*entity.Supplier{}})

	_, err := uc.Create(dto.CreateSupplierRequest{NIT: "900123456"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(dto.CreateSupplierRequest{Company: "ACME S.A.S."})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupplier_BusquedaPorNIT(t *testing.T) {
	uc := usecase.NewSupplierUseCase(&memSupplierRepo{byID: map[string]*entity.Supplier{}})

	created, err := uc.Create(dto.CreateSupplierRequest{Company: "ACME S.A.S.", NIT: "901999888"})
	require.NoError(t, err)

	found, err := uc.GetByNIT("901999888")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = uc.GetByNIT("000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
