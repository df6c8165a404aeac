package catalog

import "cashflow-mcp/internal/cashflow"

// builtin is the demo portfolio served when no profiles file is configured.
var builtin = []cashflow.EntityProfile{
	{
		ID:             "1",
		Name:           "Tech Solutions SA",
		RegistrationID: "123456789",
		Sector:         "Technology",
		AnnualRevenue:  1_500_000,
		Services:       []string{"Current Account", "Credit Line", "Business Card"},
		Metrics: cashflow.FinancialMetrics{
			CommercialMargin:       850_000,
			Production:             1_500_000,
			ValueAdded:             980_000,
			EBITDA:                 420_000,
			OperatingResult:        380_000,
			NetResult:              285_000,
			SelfFinancingCapacity:  350_000,
			WorkingCapitalRequired: 180_000,
			Treasury:               290_000,
		},
	},
	{
		ID:             "2",
		Name:           "Green Energy SARL",
		RegistrationID: "987654321",
		Sector:         "Energy",
		AnnualRevenue:  2_800_000,
		Services:       []string{"Current Account", "Investment Account"},
		Metrics: cashflow.FinancialMetrics{
			CommercialMargin:       1_680_000,
			Production:             2_800_000,
			ValueAdded:             1_950_000,
			EBITDA:                 890_000,
			OperatingResult:        820_000,
			NetResult:              615_000,
			SelfFinancingCapacity:  750_000,
			WorkingCapitalRequired: 420_000,
			Treasury:               580_000,
		},
	},
	{
		ID:             "3",
		Name:           "Construction Plus",
		RegistrationID: "456789123",
		Sector:         "Construction",
		AnnualRevenue:  4_200_000,
		Services:       []string{"Current Account", "Credit Line", "Leasing"},
		Metrics: cashflow.FinancialMetrics{
			CommercialMargin:       2_520_000,
			Production:             4_200_000,
			ValueAdded:             2_940_000,
			EBITDA:                 1_260_000,
			OperatingResult:        1_180_000,
			NetResult:              885_000,
			SelfFinancingCapacity:  1_050_000,
			WorkingCapitalRequired: 840_000,
			Treasury:               720_000,
		},
	},
	{
		ID:             "4",
		Name:           "Digital Marketing Pro",
		RegistrationID: "789123456",
		Sector:         "Marketing",
		AnnualRevenue:  980_000,
		Services:       []string{"Current Account", "Business Card"},
		Metrics: cashflow.FinancialMetrics{
			CommercialMargin:       588_000,
			Production:             980_000,
			ValueAdded:             686_000,
			EBITDA:                 294_000,
			OperatingResult:        245_000,
			NetResult:              186_000,
			SelfFinancingCapacity:  225_000,
			WorkingCapitalRequired: 147_000,
			Treasury:               196_000,
		},
	},
	{
		ID:             "5",
		Name:           "Food Services Express",
		RegistrationID: "321654987",
		Sector:         "Food & Beverage",
		AnnualRevenue:  3_100_000,
		Services:       []string{"Current Account", "Credit Line", "POS Terminal"},
		Metrics: cashflow.FinancialMetrics{
			CommercialMargin:       1_860_000,
			Production:             3_100_000,
			ValueAdded:             2_170_000,
			EBITDA:                 930_000,
			OperatingResult:        868_000,
			NetResult:              651_000,
			SelfFinancingCapacity:  775_000,
			WorkingCapitalRequired: 465_000,
			Treasury:               620_000,
		},
	},
	{
		ID:             "6",
		Name:           "Logistics Pro SARL",
		RegistrationID: "147258369",
		Sector:         "Logistics",
		AnnualRevenue:  5_200_000,
		Services:       []string{"Current Account", "Credit Line", "Fleet Management"},
		Metrics: cashflow.FinancialMetrics{
			CommercialMargin:       3_120_000,
			Production:             5_200_000,
			ValueAdded:             3_640_000,
			EBITDA:                 1_560_000,
			OperatingResult:        1_430_000,
			NetResult:              1_072_500,
			SelfFinancingCapacity:  1_300_000,
			WorkingCapitalRequired: 1_040_000,
			Treasury:               890_000,
		},
	},
	{
		ID:             "7",
		Name:           "Healthcare Solutions",
		RegistrationID: "258369147",
		Sector:         "Healthcare",
		AnnualRevenue:  3_800_000,
		Services:       []string{"Current Account", "Investment Account", "Credit Line"},
		Metrics: cashflow.FinancialMetrics{
			CommercialMargin:       2_280_000,
			Production:             3_800_000,
			ValueAdded:             2_660_000,
			EBITDA:                 1_140_000,
			OperatingResult:        1_045_000,
			NetResult:              783_750,
			SelfFinancingCapacity:  950_000,
			WorkingCapitalRequired: 760_000,
			Treasury:               650_000,
		},
	},
	{
		ID:             "8",
		Name:           "Retail Innovations",
		RegistrationID: "369147258",
		Sector:         "Retail",
		AnnualRevenue:  2_900_000,
		Services:       []string{"Current Account", "POS Terminal", "Credit Line"},
		Metrics: cashflow.FinancialMetrics{
			CommercialMargin:       1_740_000,
			Production:             2_900_000,
			ValueAdded:             2_030_000,
			EBITDA:                 870_000,
			OperatingResult:        797_500,
			NetResult:              598_125,
			SelfFinancingCapacity:  725_000,
			WorkingCapitalRequired: 580_000,
			Treasury:               495_000,
		},
	},
	{
		ID:             "9",
		Name:           "Manufacturing Elite",
		RegistrationID: "741852963",
		Sector:         "Manufacturing",
		AnnualRevenue:  6_500_000,
		Services:       []string{"Current Account", "Credit Line", "Investment Account", "Leasing"},
		Metrics: cashflow.FinancialMetrics{
			CommercialMargin:       3_900_000,
			Production:             6_500_000,
			ValueAdded:             4_550_000,
			EBITDA:                 1_950_000,
			OperatingResult:        1_787_500,
			NetResult:              1_340_625,
			SelfFinancingCapacity:  1_625_000,
			WorkingCapitalRequired: 1_300_000,
			Treasury:               1_112_500,
		},
	},
	{
		ID:             "10",
		Name:           "AgriTech Solutions",
		RegistrationID: "963852741",
		Sector:         "Agriculture",
		AnnualRevenue:  4_100_000,
		Services:       []string{"Current Account", "Credit Line", "Equipment Financing"},
		Metrics: cashflow.FinancialMetrics{
			CommercialMargin:       2_460_000,
			Production:             4_100_000,
			ValueAdded:             2_870_000,
			EBITDA:                 1_230_000,
			OperatingResult:        1_127_500,
			NetResult:              845_625,
			SelfFinancingCapacity:  1_025_000,
			WorkingCapitalRequired: 820_000,
			Treasury:               702_500,
		},
	},
	{
		ID:             "11",
		Name:           "EcoConstruct",
		RegistrationID: "852963741",
		Sector:         "Construction",
		AnnualRevenue:  3_600_000,
		Services:       []string{"Current Account", "Credit Line", "Leasing"},
		Metrics: cashflow.FinancialMetrics{
			CommercialMargin:       2_160_000,
			Production:             3_600_000,
			ValueAdded:             2_520_000,
			EBITDA:                 1_080_000,
			OperatingResult:        990_000,
			NetResult:              742_500,
			SelfFinancingCapacity:  900_000,
			WorkingCapitalRequired: 720_000,
			Treasury:               616_000,
		},
	},
	{
		ID:             "12",
		Name:           "Smart Electronics",
		RegistrationID: "159753456",
		Sector:         "Electronics",
		AnnualRevenue:  2_400_000,
		Services:       []string{"Current Account", "Credit Line"},
		Metrics: cashflow.FinancialMetrics{
			CommercialMargin:       1_440_000,
			Production:             2_400_000,
			ValueAdded:             1_680_000,
			EBITDA:                 720_000,
			OperatingResult:        660_000,
			NetResult:              495_000,
			SelfFinancingCapacity:  600_000,
			WorkingCapitalRequired: 480_000,
			Treasury:               410_000,
		},
	},
	{
		ID:             "13",
		Name:           "Urban Transport",
		RegistrationID: "357159852",
		Sector:         "Transportation",
		AnnualRevenue:  5_800_000,
		Services:       []string{"Current Account", "Fleet Management", "Credit Line"},
		Metrics: cashflow.FinancialMetrics{
			CommercialMargin:       3_480_000,
			Production:             5_800_000,
			ValueAdded:             4_060_000,
			EBITDA:                 1_740_000,
			OperatingResult:        1_595_000,
			NetResult:              1_196_250,
			SelfFinancingCapacity:  1_450_000,
			WorkingCapitalRequired: 1_160_000,
			Treasury:               992_000,
		},
	},
}
