// Package schema defines the fixed user-import template: the 45 target
// fields in output order, their semantic kinds, and the keyword hints the
// column auto-mapper scores source headers against.
package schema

// Kind is the semantic type of a template field. It selects which
// normalizer handles the cell value.
type Kind int

const (
	KindFreeText Kind = iota
	KindCivility
	KindFirstName
	KindSurname
	KindUserType
	KindDate
	KindEmail
	KindBool
	KindCountry
	KindPhone
	KindSIRET
)

// Field is one column of the import template. Name doubles as the schema
// identity and as the exact-match hint for auto-mapping.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
}

// Indices of fields the engine references by position.
const (
	IdxIdentifier  = 0
	IdxCivility    = 1
	IdxFirstName   = 2
	IdxBirthName   = 3
	IdxUsageName   = 4
	IdxUserType    = 5
	IdxCompanyName = 31
	IdxSIRET       = 33
)

// Fields is the import template, in output column order. The display names
// come verbatim from the platform's import workbook and must not change.
var Fields = []Field{
	{Name: "Identifiant utilisateurs*", Kind: KindFreeText},
	{Name: "Civilité (M. / Mme)", Kind: KindCivility},
	{Name: "Prénom*", Kind: KindFirstName, Required: true},
	{Name: "Nom de naissance / Nom d'état-civil*", Kind: KindSurname, Required: true},
	{Name: "Nom d'usage / Nom marital", Kind: KindSurname},
	{Name: "Type d'utilisateur* (Diplômé [1] / Etudiant [5])", Kind: KindUserType},
	{Name: "Date de naissance (jj/mm/aaaa)", Kind: KindDate},
	{Name: "Email personnel 1", Kind: KindEmail},
	{Name: "Email personnel 2", Kind: KindEmail},
	{Name: "Données Académiques", Kind: KindFreeText},
	{Name: "Référence du diplôme (Code étape)", Kind: KindFreeText},
	{Name: "Mode de formation", Kind: KindFreeText},
	{Name: "Date d'intégration  (jj/mm/aaaa)", Kind: KindDate},
	{Name: "Date d'obtention du diplôme (jj/mm/aaaa)", Kind: KindDate},
	{Name: "A obtenu son diplôme ? (Oui [1] / Non [0])", Kind: KindBool},
	{Name: "Données Personnelles", Kind: KindFreeText},
	{Name: "Adresse personnelle", Kind: KindFreeText},
	{Name: "Adresse personnelle - Complément", Kind: KindFreeText},
	{Name: "Adresse personnelle – Complément 2", Kind: KindFreeText},
	{Name: "Adresse personnelle - Code postal", Kind: KindFreeText},
	{Name: "Adresse personnelle - Ville", Kind: KindFreeText},
	{Name: "Adresse personnelle - Pays (ISO - 2 lettres)", Kind: KindCountry},
	{Name: "NPAI (Oui [1] / Non [0])", Kind: KindBool},
	{Name: "Téléphone fixe personnel", Kind: KindPhone},
	{Name: "Téléphone mobile personnel", Kind: KindPhone},
	{Name: "Nationalité", Kind: KindFreeText},
	{Name: "Données Professionelles", Kind: KindFreeText},
	{Name: "Situation actuelle", Kind: KindFreeText},
	{Name: "Titre du poste actuel", Kind: KindFreeText},
	{Name: "Type de contrat – Intitulé", Kind: KindFreeText},
	{Name: "Fonction dans l'entreprise", Kind: KindFreeText},
	{Name: "Entreprise - Nom", Kind: KindFreeText},
	{Name: "Entreprise - Secteur d'activité – Intitulé", Kind: KindFreeText},
	{Name: "Entreprise - Code SIRET", Kind: KindSIRET},
	{Name: "Entreprise - Site internet", Kind: KindFreeText},
	{Name: "Adresse professionnelle", Kind: KindFreeText},
	{Name: "Adresse professionnelle - Complément", Kind: KindFreeText},
	{Name: "Adresse professionnelle - Code postal", Kind: KindFreeText},
	{Name: "Adresse professionnelle - Ville", Kind: KindFreeText},
	{Name: "Adresse professionnelle - Pays (ISO - 2 lettres)", Kind: KindCountry},
	{Name: "Téléphone fixe professionnel", Kind: KindPhone},
	{Name: "Téléphone mobile professionnel", Kind: KindPhone},
	{Name: "Email professionnel", Kind: KindEmail},
	{Name: "Début de l'expérience (jj/mm/aaaa)", Kind: KindDate},
	{Name: "Fin de l'expérience (jj/mm/aaaa)", Kind: KindDate},
}

// Names returns the template header row.
func Names() []string {
	names := make([]string, len(Fields))
	for i, f := range Fields {
		names[i] = f.Name
	}
	return names
}

// Keywords lists, per target field name, the auto-mapping hints in priority
// order. Fields absent here are only mapped by the exact-name pass.
var Keywords = map[string][]string{
	"Identifiant utilisateurs*":                        {"identifiant", "id", "matricule", "code"},
	"Civilité (M. / Mme)":                              {"civilite", "civilité", "mr", "mme", "genre", "titre"},
	"Prénom*":                                          {"prénom", "prenom", "firstname", "first_name", "first name"},
	"Nom de naissance / Nom d'état-civil*":             {"nom", "lastname", "last_name", "last name", "nom_famille"},
	"Type d'utilisateur* (Diplômé [1] / Etudiant [5])": {"type", "statut", "categorie", "catégorie", "profil", "rôle", "role"},
	"Date de naissance (jj/mm/aaaa)":                   {"naissance", "birth", "date_naissance", "datenaissance"},
	"Email personnel 1":                                {"email", "mail", "courriel", "e-mail"},
	"Email personnel 2":                                {"email 2", "second email", "email secondaire"},
	"Référence du diplôme (Code étape)":                {"diplome", "diplôme", "formation", "code étape", "référence diplôme"},
	"Date d'obtention du diplôme (jj/mm/aaaa)":         {"obtention", "date diplome", "date obtention", "fin formation"},
	"A obtenu son diplôme ? (Oui [1] / Non [0])":       {"obtenu", "validé", "diplômé", "réussi"},
	"Adresse personnelle":                              {"adresse", "rue", "street", "adresse 1", "address"},
	"Adresse personnelle - Code postal":                {"code postal", "cp", "zip", "postal"},
	"Adresse personnelle - Ville":                      {"ville", "city", "commune"},
	"Adresse personnelle - Pays (ISO - 2 lettres)":     {"pays", "country"},
	"Téléphone mobile personnel":                       {"mobile", "portable", "gsm", "cell"},
	"Nationalité":                                      {"nationalite", "nationalité", "citizenship"},
	"Titre du poste actuel":                            {"poste", "titre", "fonction", "job title"},
	"Entreprise - Nom":                                 {"entreprise", "société", "societe", "company", "employeur"},
	"Email professionnel":                              {"email pro", "mail pro", "email professionnel"},
}
