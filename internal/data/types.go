package data

import (
	"strconv"
	"time"
)

// TimeLayout is the timestamp layout used when writing hearing records.
const TimeLayout = "2006-01-02 15:04:05"

type Hearing struct {
	ID             string    `json:"id_solicitacao"`
	Partner        string    `json:"nome_parceiro"`
	Client         string    `json:"nome_cliente"`
	Type           string    `json:"tipo"`
	DemandType     string    `json:"tipo_demanda"`
	CaseArea       string    `json:"area_processo"`
	HearingType    string    `json:"tipo_audiencia"`
	Status         string    `json:"situacao"`
	Court          string    `json:"orgao"`
	District       string    `json:"comarca"`
	DistrictState  string    `json:"uf_comarca"`
	DataStatus     string    `json:"situacao_dados"`
	ClientGuidance string    `json:"orientacoes_inseridas_cliente"`
	Swaps          int       `json:"qtd_troca"`
	Declines       int       `json:"qtd_declinio"`
	Default        bool      `json:"houve_revelia"`
	Absence        bool      `json:"houve_ausencia"`
	Misconduct     bool      `json:"houve_ma_atuacao"`
	OpenedAt       time.Time `json:"datahora_abertura_solicitacao"`
	HearingAt      time.Time `json:"datahora_audiencia"`
	ClosedAt       time.Time `json:"datahora_finalizacao_solicitacao"`
	Failure        int       `json:"falha"`
}

// Record renders h in Header order. Zero timestamps are written empty.
func (h Hearing) Record() []string {
	return []string{
		h.ID, h.Partner, h.Client, h.Type, h.DemandType, h.CaseArea,
		h.HearingType, h.Status, h.Court, h.District, h.DistrictState,
		h.DataStatus, h.ClientGuidance,
		strconv.Itoa(h.Swaps), strconv.Itoa(h.Declines),
		boolToFlag(h.Default), boolToFlag(h.Absence), boolToFlag(h.Misconduct),
		formatTime(h.OpenedAt), formatTime(h.HearingAt), formatTime(h.ClosedAt),
		strconv.Itoa(h.Failure),
	}
}

// Records returns the header followed by one record per hearing.
func Records(hs []Hearing) [][]string {
	out := make([][]string, 0, len(hs)+1)
	out = append(out, append([]string(nil), Header...))
	for _, h := range hs {
		out = append(out, h.Record())
	}
	return out
}

func boolToFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}
