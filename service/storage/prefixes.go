package storage

// Key prefixes of the ledger records.
const (
	PrefixSequence = 1

	PrefixAccount      = 2
	PrefixAccountForID = 3
	PrefixKey          = 4

	PrefixAsset   = 5
	PrefixBalance = 6

	PrefixReceipt = 7
)
