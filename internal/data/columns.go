package data

// Column names of the hearing dataset.
const (
	ColID              = "id_solicitacao"
	ColPartner         = "nome_parceiro"
	ColClient          = "nome_cliente"
	ColType            = "tipo"
	ColDemandType      = "tipo_demanda"
	ColCaseArea        = "area_processo"
	ColHearingType     = "tipo_audiencia"
	ColStatus          = "situacao"
	ColCourt           = "orgao"
	ColDistrict        = "comarca"
	ColDistrictState   = "uf_comarca"
	ColDataStatus      = "situacao_dados"
	ColClientGuidance  = "orientacoes_inseridas_cliente"
	ColSwaps           = "qtd_troca"
	ColDeclines        = "qtd_declinio"
	ColDefault         = "houve_revelia"
	ColAbsence         = "houve_ausencia"
	ColMisconduct      = "houve_ma_atuacao"
	ColOpenedAt        = "datahora_abertura_solicitacao"
	ColHearingAt       = "datahora_audiencia"
	ColClosedAt        = "datahora_finalizacao_solicitacao"
	ColFailure         = "falha"
	ColLeadDays        = "antecedencia_dias"
	ColOpenToCloseDays = "duracao_abertura_finalizacao"
	ColHearingMonth    = "mes_audiencia"
)

// Header is the column order written by the generator.
var Header = []string{
	ColID, ColPartner, ColClient, ColType, ColDemandType, ColCaseArea,
	ColHearingType, ColStatus, ColCourt, ColDistrict, ColDistrictState,
	ColDataStatus, ColClientGuidance, ColSwaps, ColDeclines, ColDefault,
	ColAbsence, ColMisconduct, ColOpenedAt, ColHearingAt, ColClosedAt,
	ColFailure,
}
