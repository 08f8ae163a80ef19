package config

// Panel holds the dashboard's panel configuration: which chain to talk to,
// which contract to drive, and the ABI text describing it. It is the unit
// a template snapshots.
type Panel struct {
	RPCListText     string `json:"rpcListText"`     // newline-separated RPC URLs
	SelectedRPC     string `json:"selectedRpc"`     // must be one of RPCList()
	ExplorerBase    string `json:"explorerBase"`    // explorer web UI base, for links
	ExplorerAPI     string `json:"explorerApi"`     // Etherscan-compatible API base
	ExplorerAPIKey  string `json:"explorerApiKey"`
	ChainID         string `json:"chainId"`
	ContractAddress string `json:"contractAddress"`
	ABIText         string `json:"abiText"`

	// internal: workspace dir path used for Save()
	dir string
}
