package repo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/morkid/paginate"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/0xFacet/facet-mono/packages/facet-deriver/pkg/types"
)

var ErrNotFound = errors.New("deposit not found")

// DB is the database handle the repositories operate on.
type DB interface {
	GormDB() *gorm.DB
}

// Deposit is a persisted derived deposit transaction.
type Deposit struct {
	ID               int             `json:"id" gorm:"primaryKey"`
	L1TxHash         string          `json:"l1TxHash"`
	L1BlockHash      string          `json:"l1BlockHash"`
	L1BlockNumber    uint64          `json:"l1BlockNumber"`
	FacetBlockNumber uint64          `json:"facetBlockNumber"`
	SourceHash       string          `json:"sourceHash"`
	L2TxHash         string          `json:"l2TxHash"`
	FromAddress      string          `json:"fromAddress"`
	ToAddress        *string         `json:"toAddress"`
	ContractAddress  *string         `json:"contractAddress"`
	Mint             decimal.Decimal `json:"mint" gorm:"type:decimal(65,0)"`
	Data             datatypes.JSON  `json:"data"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func (Deposit) TableName() string {
	return "deposits"
}

// DepositRepository stores derived deposits keyed by their L1 transaction hash.
type DepositRepository struct {
	db DB
}

func NewDepositRepository(db DB) (*DepositRepository, error) {
	if db == nil {
		return nil, errors.New("deposit repository requires a database")
	}

	return &DepositRepository{db: db}, nil
}

// Save inserts the derived deposit, replacing any previous record of the same L1 transaction.
func (r *DepositRepository) Save(ctx context.Context, derived *types.DerivedDeposit) error {
	row, err := NewDepositRow(derived)
	if err != nil {
		return err
	}

	return r.db.GormDB().WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "l1_tx_hash"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"l1_block_hash",
			"l1_block_number",
			"facet_block_number",
			"source_hash",
			"l2_tx_hash",
			"from_address",
			"to_address",
			"contract_address",
			"mint",
			"data",
		}),
	}).Create(row).Error
}

// FindByL1TxHash returns the derived deposit of the given L1 transaction.
func (r *DepositRepository) FindByL1TxHash(ctx context.Context, hash common.Hash) (*types.DerivedDeposit, error) {
	var row Deposit

	err := r.db.GormDB().WithContext(ctx).Where("l1_tx_hash = ?", hash.Hex()).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return row.DerivedDeposit()
}

// FindAllByFromAddress returns a page of the deposits derived from transactions sent by the
// given L1 account, paginated by the page and size query parameters of the request.
func (r *DepositRepository) FindAllByFromAddress(
	ctx context.Context,
	req *http.Request,
	from common.Address,
) (*paginate.Page, error) {
	pg := paginate.New()

	q := r.db.GormDB().
		WithContext(ctx).
		Model(&Deposit{}).
		Where("from_address = ?", from.Hex()).
		Order("id DESC")

	reqPage := pg.With(q).Request(req).Response(&[]Deposit{})

	return &reqPage, nil
}

// NewDepositRow converts a derived deposit into its database row.
func NewDepositRow(derived *types.DerivedDeposit) (*Deposit, error) {
	data, err := json.Marshal(derived)
	if err != nil {
		return nil, err
	}

	row := &Deposit{
		L1TxHash:         derived.L1TxHash.Hex(),
		L1BlockHash:      derived.L1BlockHash.Hex(),
		L1BlockNumber:    derived.L1BlockNumber,
		FacetBlockNumber: derived.FacetBlockNumber,
		SourceHash:       derived.SourceHash.Hex(),
		L2TxHash:         derived.L2TxHash.Hex(),
		FromAddress:      derived.From.Hex(),
		Mint:             decimal.Zero,
		Data:             datatypes.JSON(data),
	}
	if derived.To != nil {
		to := derived.To.Hex()
		row.ToAddress = &to
	}
	if derived.ContractAddress != nil {
		contract := derived.ContractAddress.Hex()
		row.ContractAddress = &contract
	}
	if derived.Mint != nil {
		row.Mint = decimal.NewFromBigInt(derived.Mint.ToInt(), 0)
	}

	return row, nil
}

// DerivedDeposit decodes the full derivation record stored in the row.
func (d *Deposit) DerivedDeposit() (*types.DerivedDeposit, error) {
	var derived types.DerivedDeposit
	if err := json.Unmarshal(d.Data, &derived); err != nil {
		return nil, err
	}

	return &derived, nil
}
