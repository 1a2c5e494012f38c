package tracking_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfsilva/setup-rastreio/internal/application/dto"
	"github.com/gfsilva/setup-rastreio/internal/application/tracking"
	"github.com/gfsilva/setup-rastreio/internal/domain"
	"github.com/gfsilva/setup-rastreio/internal/domain/entity"
	"github.com/gfsilva/setup-rastreio/internal/domain/repository"
)

const testThreshold = 5

type engineFixture struct {
	uc       *tracking.UseCase
	equip    *memEquipmentRepo
	mov      *memMovementRepo
	notif    *memNotificationRepo
	notifier *memNotifier
	tx       *memTxRunner
}

func newEngineFixture(t *testing.T, items ...*entity.Equipment) *engineFixture {
	t.Helper()
	f := &engineFixture{
		equip:    newMemEquipmentRepo(items...),
		mov:      newMemMovementRepo(),
		notif:    newMemNotificationRepo(),
		notifier: &memNotifier{},
	}
	f.tx = &memTxRunner{equip: f.equip, mov: f.mov, notif: f.notif}
	f.uc = tracking.NewUseCase(f.tx, f.notifier, testThreshold, nil)
	return f
}

func notebook(qty int64) *entity.Equipment {
	return &entity.Equipment{ID: "eq-1", Name: "Notebook Dell", SerialNumber: "SN-001", AvailableQuantity: qty}
}

func TestRegisterMovement_SaidaDecrementaEstoque(t *testing.T) {
	f := newEngineFixture(t, notebook(10))

	mov, err := f.uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		EquipmentID:       "eq-1",
		Status:            entity.StatusSaida,
		Quantity:          3,
		SectorID:          "setor-ti",
		ResponsiblePerson: "Maria Souza",
		DeliveredBy:       "João Lima",
		ReceivedBy:        "Maria Souza",
	})
	require.NoError(t, err)
	require.NotNil(t, mov)

	assert.NotEmpty(t, mov.ID)
	assert.Equal(t, "user-1", mov.CreatedBy)
	assert.Equal(t, entity.StatusSaida, mov.Status)
	assert.Equal(t, int64(7), f.equip.quantity("eq-1"))
	assert.Equal(t, 1, f.mov.count())
}

func TestRegisterMovement_DeltasPorStatus(t *testing.T) {
	cases := []struct {
		status  string
		qty     int64
		wantQty int64
	}{
		{entity.StatusSaida, 2, 8},
		{entity.StatusManutencao, 2, 8},
		{entity.StatusDevolucao, 2, 12},
		{entity.StatusDanificado, 2, 10}, // neutro: estoque já decrementado pela saída
	}
	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			f := newEngineFixture(t, notebook(10))
			_, err := f.uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
				EquipmentID: "eq-1", Status: tc.status, Quantity: tc.qty,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.wantQty, f.equip.quantity("eq-1"))
		})
	}
}

func TestRegisterMovement_EstoqueInsuficiente(t *testing.T) {
	f := newEngineFixture(t, notebook(2))

	_, err := f.uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: entity.StatusSaida, Quantity: 3,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// rejeição não deixa rastro: nem lançamento, nem mudança de quantidade
	assert.Equal(t, 0, f.mov.count())
	assert.Equal(t, int64(2), f.equip.quantity("eq-1"))
}

func TestRegisterMovement_EntradaInvalida(t *testing.T) {
	f := newEngineFixture(t, notebook(10))
	ctx := context.Background()

	_, err := f.uc.RegisterMovement(ctx, "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: "emprestimo", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.RegisterMovement(ctx, "user-1", dto.RegisterMovementRequest{
		EquipmentID: "", Status: entity.StatusSaida, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.RegisterMovement(ctx, "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: entity.StatusSaida, Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.uc.RegisterMovement(ctx, "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: entity.StatusSaida, Quantity: -2,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	assert.Equal(t, 0, f.mov.count())
}

func TestRegisterMovement_EquipamentoInexistente(t *testing.T) {
	f := newEngineFixture(t)
	_, err := f.uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		EquipmentID: "fantasma", Status: entity.StatusSaida, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterMovement_InvarianteDeReconciliacao(t *testing.T) {
	f := newEngineFixture(t, notebook(10))
	ctx := context.Background()

	steps := []struct {
		status string
		qty    int64
	}{
		{entity.StatusSaida, 4},
		{entity.StatusDevolucao, 2},
		{entity.StatusManutencao, 3},
		{entity.StatusDanificado, 1},
		{entity.StatusDevolucao, 3},
	}
	var sum int64
	for _, s := range steps {
		_, err := f.uc.RegisterMovement(ctx, "user-1", dto.RegisterMovementRequest{
			EquipmentID: "eq-1", Status: s.status, Quantity: s.qty,
		})
		require.NoError(t, err)
		sum += entity.QuantityDelta(s.status, s.qty)
	}

	// available_quantity == quantidade inicial + soma dos deltas do livro
	assert.Equal(t, 10+sum, f.equip.quantity("eq-1"))
	assert.Equal(t, len(steps), f.mov.count())
}

func TestRegisterMovement_AlertaNoCruzamentoDoLimiar(t *testing.T) {
	f := newEngineFixture(t, notebook(7))
	ctx := context.Background()

	// 7 -> 6: ainda acima do limiar, sem alerta
	_, err := f.uc.RegisterMovement(ctx, "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: entity.StatusSaida, Quantity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, f.notif.count())

	// 6 -> 4: cruzamento descendente, um alerta persistido e publicado
	_, err = f.uc.RegisterMovement(ctx, "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: entity.StatusSaida, Quantity: 2,
	})
	require.NoError(t, err)
	require.Equal(t, 1, f.notif.count())

	events := f.notifier.published()
	require.Len(t, events, 1)
	assert.Equal(t, "eq-1", events[0].EquipmentID)
	assert.Equal(t, "Notebook Dell", events[0].Name)
	assert.Equal(t, int64(4), events[0].Quantity)
	assert.Equal(t, int64(testThreshold), events[0].Threshold)

	// 4 -> 3: já abaixo do limiar, nenhum alerta novo
	_, err = f.uc.RegisterMovement(ctx, "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: entity.StatusSaida, Quantity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.notif.count())
	assert.Len(t, f.notifier.published(), 1)
}

func TestRegisterMovement_SemNotifierNaoFalha(t *testing.T) {
	equip := newMemEquipmentRepo(notebook(6))
	mov := newMemMovementRepo()
	notif := newMemNotificationRepo()
	tx := &memTxRunner{equip: equip, mov: mov, notif: notif}
	uc := tracking.NewUseCase(tx, nil, testThreshold, nil)

	_, err := uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: entity.StatusSaida, Quantity: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, notif.count())
}

func TestEditMovement_ReaplicaDelta(t *testing.T) {
	f := newEngineFixture(t, notebook(10))
	ctx := context.Background()

	mov, err := f.uc.RegisterMovement(ctx, "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: entity.StatusSaida, Quantity: 3,
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), f.equip.quantity("eq-1"))

	// saída 3 -> saída 5: reverte +3, aplica -5
	updated, err := f.uc.EditMovement(ctx, mov.ID, dto.EditMovementRequest{
		Status: entity.StatusSaida, Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), updated.Quantity)
	assert.Equal(t, int64(5), f.equip.quantity("eq-1"))

	// saída 5 -> devolução 5: reverte +5, aplica +5
	updated, err = f.uc.EditMovement(ctx, mov.ID, dto.EditMovementRequest{
		Status: entity.StatusDevolucao, Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDevolucao, updated.Status)
	assert.Equal(t, int64(15), f.equip.quantity("eq-1"))
}

func TestEditMovement_SemMudancaNaoAlteraEstoque(t *testing.T) {
	f := newEngineFixture(t, notebook(10))
	ctx := context.Background()

	mov, err := f.uc.RegisterMovement(ctx, "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: entity.StatusSaida, Quantity: 3,
	})
	require.NoError(t, err)

	updated, err := f.uc.EditMovement(ctx, mov.ID, dto.EditMovementRequest{
		Status: entity.StatusSaida, Quantity: 3, Notes: "responsável corrigido",
	})
	require.NoError(t, err)
	assert.Equal(t, "responsável corrigido", updated.Notes)
	assert.Equal(t, int64(7), f.equip.quantity("eq-1"))

	stored, err := f.mov.GetByID(ctx, mov.ID)
	require.NoError(t, err)
	assert.Equal(t, "responsável corrigido", stored.Notes)
}

func TestEditMovement_RejeitaEstoqueNegativo(t *testing.T) {
	f := newEngineFixture(t, notebook(5))
	ctx := context.Background()

	mov, err := f.uc.RegisterMovement(ctx, "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: entity.StatusSaida, Quantity: 2,
	})
	require.NoError(t, err)

	// reverter +2 e aplicar -10 deixaria o estoque em -5
	_, err = f.uc.EditMovement(ctx, mov.ID, dto.EditMovementRequest{
		Status: entity.StatusSaida, Quantity: 10,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// lançamento e estoque intactos
	assert.Equal(t, int64(3), f.equip.quantity("eq-1"))
	stored, err := f.mov.GetByID(ctx, mov.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.Quantity)
}

func TestEditMovement_LancamentoInexistente(t *testing.T) {
	f := newEngineFixture(t, notebook(5))
	_, err := f.uc.EditMovement(context.Background(), "fantasma", dto.EditMovementRequest{
		Status: entity.StatusSaida, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteMovement_CompensaDelta(t *testing.T) {
	f := newEngineFixture(t, notebook(10))
	ctx := context.Background()

	mov, err := f.uc.RegisterMovement(ctx, "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: entity.StatusSaida, Quantity: 4,
	})
	require.NoError(t, err)
	require.Equal(t, int64(6), f.equip.quantity("eq-1"))

	require.NoError(t, f.uc.DeleteMovement(ctx, mov.ID))
	assert.Equal(t, int64(10), f.equip.quantity("eq-1"))
	assert.Equal(t, 0, f.mov.count())
}

func TestDeleteMovement_RejeitaCompensacaoNegativa(t *testing.T) {
	f := newEngineFixture(t, notebook(0))
	ctx := context.Background()

	dev, err := f.uc.RegisterMovement(ctx, "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: entity.StatusDevolucao, Quantity: 5,
	})
	require.NoError(t, err)

	// a devolução já foi consumida por uma saída posterior
	_, err = f.uc.RegisterMovement(ctx, "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: entity.StatusSaida, Quantity: 4,
	})
	require.NoError(t, err)

	err = f.uc.DeleteMovement(ctx, dev.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(1), f.equip.quantity("eq-1"))
	assert.Equal(t, 2, f.mov.count())
}

func TestDeleteMovement_AlertaNoCruzamentoDoLimiar(t *testing.T) {
	f := newEngineFixture(t, notebook(2))
	ctx := context.Background()

	// devolução sobe o estoque para 7, acima do limiar, sem alerta
	dev, err := f.uc.RegisterMovement(ctx, "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: entity.StatusDevolucao, Quantity: 5,
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), f.equip.quantity("eq-1"))
	require.Equal(t, 0, f.notif.count())

	// a exclusão compensa 7 -> 2 e cruza o limiar para baixo: alerta único
	require.NoError(t, f.uc.DeleteMovement(ctx, dev.ID))
	assert.Equal(t, int64(2), f.equip.quantity("eq-1"))
	require.Equal(t, 1, f.notif.count())

	events := f.notifier.published()
	require.Len(t, events, 1)
	assert.Equal(t, "eq-1", events[0].EquipmentID)
	assert.Equal(t, int64(2), events[0].Quantity)
}

func TestDeleteMovement_CompensacaoParaCimaNaoAlerta(t *testing.T) {
	f := newEngineFixture(t, notebook(10))
	ctx := context.Background()

	saida, err := f.uc.RegisterMovement(ctx, "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: entity.StatusSaida, Quantity: 6,
	})
	require.NoError(t, err)
	require.Equal(t, 1, f.notif.count()) // 10 -> 4 cruzou no registro

	// excluir a saída devolve 4 -> 10; subir nunca dispara alerta
	require.NoError(t, f.uc.DeleteMovement(ctx, saida.ID))
	assert.Equal(t, int64(10), f.equip.quantity("eq-1"))
	assert.Equal(t, 1, f.notif.count())
	assert.Len(t, f.notifier.published(), 1)
}

func TestDarBaixa_BomDevolveAoEstoque(t *testing.T) {
	f := newEngineFixture(t, notebook(10))
	ctx := context.Background()

	saida, err := f.uc.RegisterMovement(ctx, "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: entity.StatusSaida, Quantity: 3,
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), f.equip.quantity("eq-1"))

	baixa, err := f.uc.DarBaixa(ctx, "user-2", saida.ID, dto.BaixaRequest{
		Condition: entity.CondicaoBom, Responsible: "Carlos Nunes", Notes: "sem avarias",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusDevolucao, baixa.Status)
	assert.Equal(t, int64(3), baixa.Quantity)
	assert.Equal(t, "Sala de Setup", baixa.ReceivedBy)
	assert.Equal(t, "Carlos Nunes", baixa.ResponsiblePerson)
	assert.Contains(t, baixa.Notes, "Bom estado")
	assert.Contains(t, baixa.Notes, "sem avarias")
	assert.Equal(t, int64(10), f.equip.quantity("eq-1"))
}

func TestDarBaixa_DanificadoNaoDevolveEstoque(t *testing.T) {
	f := newEngineFixture(t, notebook(10))
	ctx := context.Background()

	saida, err := f.uc.RegisterMovement(ctx, "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: entity.StatusManutencao, Quantity: 2,
	})
	require.NoError(t, err)
	require.Equal(t, int64(8), f.equip.quantity("eq-1"))

	baixa, err := f.uc.DarBaixa(ctx, "user-2", saida.ID, dto.BaixaRequest{
		Condition: entity.CondicaoDanificado, Responsible: "Carlos Nunes",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusDanificado, baixa.Status)
	assert.Contains(t, baixa.Notes, "Danificado")
	// delta zero: o estoque já foi decrementado pela manutenção original
	assert.Equal(t, int64(8), f.equip.quantity("eq-1"))
	assert.Equal(t, 2, f.mov.count())
}

func TestDarBaixa_SomenteSaidaOuManutencao(t *testing.T) {
	f := newEngineFixture(t, notebook(10))
	ctx := context.Background()

	dev, err := f.uc.RegisterMovement(ctx, "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: entity.StatusDevolucao, Quantity: 1,
	})
	require.NoError(t, err)

	_, err = f.uc.DarBaixa(ctx, "user-2", dev.ID, dto.BaixaRequest{
		Condition: entity.CondicaoBom, Responsible: "Carlos Nunes",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDarBaixa_CondicaoInvalida(t *testing.T) {
	f := newEngineFixture(t, notebook(10))
	_, err := f.uc.DarBaixa(context.Background(), "user-2", "qualquer", dto.BaixaRequest{
		Condition: "quebrado", Responsible: "Carlos Nunes",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDarBaixa_ReleOLancamentoNaTransacao(t *testing.T) {
	f := newEngineFixture(t, notebook(10))
	ctx := context.Background()

	saida, err := f.uc.RegisterMovement(ctx, "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: entity.StatusSaida, Quantity: 3,
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), f.equip.quantity("eq-1"))

	// edição concorrente comita antes da baixa: saída passa de 3 para 1
	f.tx.before = func() {
		_ = f.mov.UpdateRecord(ctx, saida.ID, repository.MovementPatch{
			Status: entity.StatusSaida, Quantity: 1,
		})
		_ = f.equip.UpdateQuantity(ctx, "eq-1", 9)
	}

	baixa, err := f.uc.DarBaixa(ctx, "user-2", saida.ID, dto.BaixaRequest{
		Condition: entity.CondicaoBom, Responsible: "Carlos Nunes",
	})
	require.NoError(t, err)

	// a baixa parte do lançamento relido na transação, nunca do defasado
	assert.Equal(t, int64(1), baixa.Quantity)
	assert.Equal(t, int64(10), f.equip.quantity("eq-1"))
}

func TestDarBaixa_LancamentoExcluidoConcorrentemente(t *testing.T) {
	f := newEngineFixture(t, notebook(10))
	ctx := context.Background()

	saida, err := f.uc.RegisterMovement(ctx, "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: entity.StatusSaida, Quantity: 3,
	})
	require.NoError(t, err)

	f.tx.before = func() {
		_ = f.mov.Delete(ctx, saida.ID)
		_ = f.equip.UpdateQuantity(ctx, "eq-1", 10)
	}

	_, err = f.uc.DarBaixa(ctx, "user-2", saida.ID, dto.BaixaRequest{
		Condition: entity.CondicaoBom, Responsible: "Carlos Nunes",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(10), f.equip.quantity("eq-1"))
}

func TestRunWithRetry_RepeteEmConflito(t *testing.T) {
	f := newEngineFixture(t, notebook(10))
	f.tx.failures = 2 // duas falhas de serialização antes do commit

	_, err := f.uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: entity.StatusSaida, Quantity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), f.equip.quantity("eq-1"))
}

func TestRunWithRetry_DesisteAposLimite(t *testing.T) {
	f := newEngineFixture(t, notebook(10))
	f.tx.failures = 10

	_, err := f.uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		EquipmentID: "eq-1", Status: entity.StatusSaida, Quantity: 1,
	})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int64(10), f.equip.quantity("eq-1"))
	assert.Equal(t, 0, f.mov.count())
}
