package catalog

import (
	"encoding/json"
	"os"
)

// Catalog holds the static lookup tables driving the fault entry form:
// shifts, fault types, equipment identifiers, products and the recommended
// solution per fault type. The compiled-in defaults match the packaging
// line this tool was written for; a JSON file can override any table.
type Catalog struct {
	Shifts          []string          `json:"shifts,omitempty"`
	FaultTypes      []string          `json:"fault_types,omitempty"`
	Robots          []string          `json:"robots,omitempty"`
	Cubas           []string          `json:"cubas,omitempty"`
	Products        []string          `json:"products,omitempty"`
	Solutions       map[string]string `json:"solutions,omitempty"`
	DefaultSolution string            `json:"default_solution,omitempty"`
}

// Default returns the built-in catalog.
func Default() Catalog {
	return Catalog{
		Shifts: []string{
			"1º TURNO (05:50 - 14:35)",
			"2º TURNO (14:03 - 22:42)",
			"3º TURNO (22:17 - 06:13)",
		},
		FaultTypes: []string{
			"1 – DISPOSIÇÃO INCORRETA NO PALLET",
			"2 – LIMPEZA",
			"3 – CAIXA NÃO ABRIU APÓS CORTE",
			"4 – GARRA LEU ERRADO E BATEU NA CAIXA",
			"5 – CAIXA MAL SELADA NA PARTE INFERIOR",
			"6 – CAIXA DEFORMADA (PESO)",
			"7 – CAIXA CAIU APÓS CHACOALHAR OS BOMBONS",
			"8 – CAIXAS NÃO UNIFORMES NA LATERAL",
			"0 – OUTRO (ESPECIFIQUE NAS OBSERVAÇÕES)",
		},
		Robots: []string{"ROBOT 01", "ROBOT 02", "ROBOT 03", "ROBOT 04"},
		Cubas: []string{
			"CUBA 01", "CUBA 02", "CUBA 03", "CUBA 04", "CUBA 05",
			"CUBA 06", "CUBA 07", "CUBA 08", "CUBA 09", "CUBA 10",
			"CUBA 11", "CUBA 12", "CUBA 13", "CUBA 14",
		},
		Products: []string{
			"OURO BRANCO", "LACTA AO LEITE", "LAKA", "SONHO DE VALSA",
			"5 STAR", "BIS AO LEITE", "BIS BRANCO", "DUONUTS", "MORANGO",
			"DIAMANTE NEGRO", "AMANDITA", "SHOT", "STICK",
		},
		Solutions: map[string]string{
			"1 – DISPOSIÇÃO INCORRETA NO PALLET": "REALINHAR PADRÃO DE PALETIZAÇÃO E FAZER NOVA BUSCA COM O ROBÔ.",
			"2 – LIMPEZA":                        "REALIZAR LIMPEZA COMPLETA DO SISTEMA. VERIFICAR SENSORES, LENTES DE CÂMERAS E SUPERFÍCIES DE CONTATO. SEGUIR PROCEDIMENTO DE HIGIENIZAÇÃO PADRÃO.",
			"3 – CAIXA NÃO ABRIU APÓS CORTE":     "VERIFICAR SISTEMA DE CORTE E ABERTURA DE CAIXAS E AJUSTAR PRESSÃO E TIMING DO MECANISMO DE ABERTURA. INSPECIONAR LÂMINAS DE CORTE.",
			"4 – GARRA LEU ERRADO E BATEU NA CAIXA":     "CALIBRAR SISTEMA DE VISÃO DA GARRA E VERIFICAR ILUMINAÇÃO E POSICIONAMENTO DAS CÂMERAS. AJUSTAR ALGORITMO DE DETECÇÃO DE POSIÇÃO.",
			"5 – CAIXA MAL SELADA NA PARTE INFERIOR":    "VERIFICAR SELAGEM DA CAIXA E OBSERVAR SE EXISTEM DEMAIS EXEMPLARES ASSIM E FAZER A CORREÇÃO NECESSÁRIA.",
			"6 – CAIXA DEFORMADA (PESO)":                "VERIFICAR SE AS DEMAIS CAIXAS ESTÃO COM PESO ALÉM DO MÁXIMO SUPORTADO PELO ROBÔ. AJUSTAR FORÇA DE MANIPULAÇÃO (CAIXA LEVE & CAIXA PESADA).",
			"7 – CAIXA CAIU APÓS CHACOALHAR OS BOMBONS": "VERIFICAR SE EXISTE ALGUMA OBSTRUÇÃO NO SISTEMA DE VÁCUO (FITA ADESIVA OU SUJIDADE). AJUSTAR VELOCIDADE DE MOVIMENTAÇÃO SE NECESSÁRIO.",
			"8 – CAIXAS NÃO UNIFORMES NA LATERAL":       "VERIFICAR ALINHAMENTO DAS DEMAIS CAIXAS, REALIZAR TROCA DE PALLET CASO NECESSÁRIO. INSPECIONAR QUALIDADE DO PAPELÃO (UMIDADE).",
			"0 – OUTRO (ESPECIFIQUE NAS OBSERVAÇÕES)":   "USE AS OBSERVAÇÕES PARA DETALHES ESPECÍFICOS DO PROBLEMA. REALIZE DIAGNÓSTICO DETALHADO CONFORME PROCEDIMENTO PADRÃO.",
		},
		DefaultSolution: "CONSULTE O MANUAL TÉCNICO E ENTRE EM CONTATO COM A EQUIPE DE MANUTENÇÃO PARA DIAGNÓSTICO DETALHADO.",
	}
}

// Load reads a catalog file and merges it over the defaults.
// A missing file is not an error; the defaults are used as-is.
func Load(path string) Catalog {
	cat := Default()
	if path == "" {
		return cat
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cat
	}

	var fileCat Catalog
	if err := json.Unmarshal(data, &fileCat); err != nil {
		return cat
	}

	if len(fileCat.Shifts) > 0 {
		cat.Shifts = fileCat.Shifts
	}
	if len(fileCat.FaultTypes) > 0 {
		cat.FaultTypes = fileCat.FaultTypes
	}
	if len(fileCat.Robots) > 0 {
		cat.Robots = fileCat.Robots
	}
	if len(fileCat.Cubas) > 0 {
		cat.Cubas = fileCat.Cubas
	}
	if len(fileCat.Products) > 0 {
		cat.Products = fileCat.Products
	}
	if len(fileCat.Solutions) > 0 {
		cat.Solutions = fileCat.Solutions
	}
	if fileCat.DefaultSolution != "" {
		cat.DefaultSolution = fileCat.DefaultSolution
	}

	return cat
}

// SolutionFor returns the recommended solution text for a fault type,
// falling back to the generic guidance when the fault is unknown.
func (c Catalog) SolutionFor(faultType string) string {
	if s, ok := c.Solutions[faultType]; ok {
		return s
	}
	return c.DefaultSolution
}
