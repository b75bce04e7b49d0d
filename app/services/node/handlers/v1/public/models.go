package public

import "github.com/chaind/chaind/foundation/blockchain/database"

type newTx struct {
	Sender    string `json:"sender" validate:"required"`
	Recipient string `json:"recipient" validate:"required"`
	Amount    uint64 `json:"amount"`
}

type chain struct {
	Length int              `json:"length"`
	Chain  []database.Block `json:"chain"`
}

type minedBlock struct {
	Message      string        `json:"message"`
	Index        uint64        `json:"index"`
	Transactions []database.Tx `json:"transactions"`
	Proof        uint64        `json:"proof"`
	PreviousHash string        `json:"previous_hash"`
}

type balance struct {
	Address string `json:"address"`
	Balance int64  `json:"balance"`
}

type registerNodes struct {
	Nodes []string `json:"nodes" validate:"required,min=1"`
}

type faucetRequest struct {
	Address string `json:"address" validate:"required"`
}

type newPost struct {
	Address string `json:"address" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type newAccount struct {
	DeviceID string `json:"device_id" validate:"required"`
}
