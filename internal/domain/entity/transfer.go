package entity

// Transfer represents a single ERC20 token transfer from the feed.
// All numeric fields arrive as decimal strings, exactly as the
// Etherscan-compatible API encodes them.
type Transfer struct {
	Hash            string `json:"hash"`
	From            string `json:"from"`
	To              string `json:"to"`
	Value           string `json:"value"`
	TokenName       string `json:"tokenName"`
	TokenSymbol     string `json:"tokenSymbol"`
	TokenDecimal    string `json:"tokenDecimal"`
	TimeStamp       string `json:"timeStamp"`
	FunctionName    string `json:"functionName"`
	BlockNumber     string `json:"blockNumber"`
	ContractAddress string `json:"contractAddress"`
}

// TokenTransferResponse is the feed's response envelope. Status is "1" on
// success and "0" on errors, including the "No transactions found" case.
type TokenTransferResponse struct {
	Status  string     `json:"status"`
	Message string     `json:"message"`
	Result  []Transfer `json:"result"`
}
