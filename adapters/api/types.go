package api

import (
	"modelbench/domain/catalog"
	"modelbench/domain/history"
)

// networkRequest is the request_data form field sent to the network endpoint
type networkRequest struct {
	TargetColumn string                `json:"target_column"`
	ModelConfig  catalog.NetworkConfig `json:"model_config"`
}

type historyReply struct {
	History []history.Record `json:"history"`
}

type messageReply struct {
	Message string `json:"message"`
}

// signupReply carries "success" or, for a taken username, "failed"
type signupReply struct {
	Success string `json:"success,omitempty"`
	Failed  string `json:"failed,omitempty"`
}
