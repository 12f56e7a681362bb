package igniteclient

// Opcodes for every operation this client implements, per §4.6's cache
// operation table and §4.7/§3.4's metadata surface.
const (
	opGet                = 1000
	opPut                = 1001
	opPutIfAbsent        = 1002
	opGetAll             = 1003
	opPutAll             = 1004
	opGetAndPut          = 1005
	opGetAndReplace      = 1006
	opGetAndRemove       = 1007
	opGetAndPutIfAbsent  = 1008
	opReplace            = 1009
	opReplaceIfEquals    = 1010
	opContainsKey        = 1011
	opContainsKeys       = 1012
	opClear              = 1013
	opClearKey           = 1014
	opClearKeys          = 1015
	opRemoveKey          = 1016
	opRemoveIfEquals     = 1017
	opRemoveKeys         = 1018
	opRemoveAll          = 1019
	opSize               = 1020
	opCacheNames         = 1050
	opCreateCache        = 1051
	opGetOrCreateCache   = 1052
	opCreateWithConfig   = 1053
	opGetOrCreateWithCfg = 1054
	opGetConfiguration   = 1055
	opDestroyCache       = 1056

	opTypeName         = 3000
	opRegisterTypeName = 3001
	opGetType          = 3002
	opPutType          = 3003
)

// PeekMode selects which partitions a Size call counts, per §4.6.
type PeekMode uint8

const (
	PeekAll     PeekMode = 0
	PeekNear    PeekMode = 1
	PeekPrimary PeekMode = 2
	PeekBackup  PeekMode = 3
)
