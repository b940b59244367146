package accounts

import "github.com/cleared-dev/compta/internal/model"

// DefaultChart returns the main accounts of the plan comptable général.
func DefaultChart() []model.Account {
	chart := []model.Account{
		{Number: "101", Label: "Capital"},
		{Number: "106", Label: "Réserves"},
		{Number: "110", Label: "Report à nouveau (solde créditeur)"},
		{Number: "119", Label: "Report à nouveau (solde débiteur)"},
		{Number: "120", Label: "Résultat de l'exercice (bénéfice)"},
		{Number: "129", Label: "Résultat de l'exercice (perte)"},
		{Number: "164", Label: "Emprunts auprès des établissements de crédit"},
		{Number: "205", Label: "Concessions, brevets, licences, logiciels"},
		{Number: "2183", Label: "Matériel de bureau et matériel informatique"},
		{Number: "2818", Label: "Amortissements des autres immobilisations corporelles"},
		{Number: "370", Label: "Stocks de marchandises"},
		{Number: "401", Label: "Fournisseurs", Description: "Comptes collectifs fournisseurs"},
		{Number: "404", Label: "Fournisseurs d'immobilisations"},
		{Number: "411", Label: "Clients", Description: "Comptes collectifs clients"},
		{Number: "421", Label: "Personnel - rémunérations dues"},
		{Number: "431", Label: "Sécurité sociale"},
		{Number: "44566", Label: "TVA déductible sur autres biens et services"},
		{Number: "44571", Label: "TVA collectée"},
		{Number: "44551", Label: "TVA à décaisser"},
		{Number: "455", Label: "Associés - comptes courants"},
		{Number: "512", Label: "Banque"},
		{Number: "530", Label: "Caisse"},
		{Number: "580", Label: "Virements internes"},
		{Number: "601", Label: "Achats stockés - matières premières"},
		{Number: "606", Label: "Achats non stockés de matières et fournitures"},
		{Number: "607", Label: "Achats de marchandises"},
		{Number: "613", Label: "Locations"},
		{Number: "622", Label: "Rémunérations d'intermédiaires et honoraires"},
		{Number: "626", Label: "Frais postaux et de télécommunications"},
		{Number: "627", Label: "Services bancaires et assimilés"},
		{Number: "641", Label: "Rémunérations du personnel"},
		{Number: "645", Label: "Charges de sécurité sociale et de prévoyance"},
		{Number: "661", Label: "Charges d'intérêts"},
		{Number: "681", Label: "Dotations aux amortissements et provisions"},
		{Number: "695", Label: "Impôts sur les bénéfices"},
		{Number: "701", Label: "Ventes de produits finis"},
		{Number: "706", Label: "Prestations de services"},
		{Number: "707", Label: "Ventes de marchandises"},
		{Number: "708", Label: "Produits des activités annexes"},
		{Number: "758", Label: "Produits divers de gestion courante"},
		{Number: "768", Label: "Autres produits financiers"},
	}
	for i := range chart {
		chart[i].Class = ClassOf(chart[i].Number)
	}
	return chart
}
