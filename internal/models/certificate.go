package models

// Certificate represents the SP_CERTIFICATE table. A certificate is owned by
// exactly one application (base or legacy) and is only ever created as a side
// effect of an approval transition.
type Certificate struct {
	CertID     string `db:"CERT_ID" json:"certId"`
	AppID      string `db:"APP_ID" json:"appId"`
	CertNumber string `db:"CERT_NUMBER" json:"certNumber"`
	IssuedTime int64  `db:"ISSUED_TIME" json:"issuedTime"`
	ValidUntil *int64 `db:"VALID_UNTIL" json:"validUntil,omitempty"`
}
