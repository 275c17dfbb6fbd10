// Package cfdi lee comprobantes fiscales (CFDI 3.3 / 4.0) recibidos en la bandeja fiscal.
package cfdi

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/servihogar-api/internal/domain"
	"github.com/jhoicas/servihogar-api/internal/domain/entity"
)

// Parser extrae los datos de un CFDI y calcula su digest canónico.
type Parser struct{}

// NewParser construye el parser.
func NewParser() *Parser {
	return &Parser{}
}

// charsetReader acepta payloads declarados en ISO-8859-1 (comunes en proveedores antiguos).
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") || strings.EqualFold(charset, "latin1") {
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	}
	if strings.EqualFold(charset, "UTF-8") {
		return input, nil
	}
	return nil, fmt.Errorf("charset no soportado: %s", charset)
}

// Parse devuelve el documento listo para la bandeja (estado Sin vincular).
// Un XML ilegible o sin timbre se reporta como ErrInvalidInput.
func (p *Parser) Parse(raw []byte) (*entity.FiscalDocument, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("%w: parsear XML: %v", domain.ErrInvalidInput, err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "Comprobante" {
		return nil, fmt.Errorf("%w: el documento no es un Comprobante", domain.ErrInvalidInput)
	}

	tfd := findLocal(root, "TimbreFiscalDigital")
	if tfd == nil {
		return nil, fmt.Errorf("%w: comprobante sin TimbreFiscalDigital", domain.ErrInvalidInput)
	}
	uuid := strings.ToUpper(attr(tfd, "UUID"))
	if uuid == "" {
		return nil, fmt.Errorf("%w: timbre sin UUID", domain.ErrInvalidInput)
	}

	total, err := decimal.NewFromString(attr(root, "Total", "total"))
	if err != nil {
		return nil, fmt.Errorf("%w: Total inválido", domain.ErrInvalidInput)
	}

	digest, err := Digest(raw)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := &entity.FiscalDocument{
		UUID:       uuid,
		Amount:     total,
		Digest:     digest,
		Status:     entity.FiscalDocStatusUnlinked,
		ReceivedAt: now,
		UpdatedAt:  now,
	}
	if e := findLocal(root, "Emisor"); e != nil {
		out.EmitterRFC = attr(e, "Rfc", "rfc")
		out.EmitterName = attr(e, "Nombre", "nombre")
	}
	if r := findLocal(root, "Receptor"); r != nil {
		out.ReceiverRFC = attr(r, "Rfc", "rfc")
		out.ReceiverName = attr(r, "Nombre", "nombre")
	}
	return out, nil
}

// Digest sha256 (hex) de la forma canónica C14N del XML. Dos envíos del mismo
// comprobante con distinto formato producen el mismo digest.
func Digest(raw []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.Entity = map[string]string{}
	dec.CharsetReader = charsetReader
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("%w: canonicalizar XML: %v", domain.ErrInvalidInput, err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// findLocal busca en profundidad el primer elemento con el nombre local dado, sin importar el prefijo.
func findLocal(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
		if found := findLocal(child, tag); found != nil {
			return found
		}
	}
	return nil
}

func attr(el *etree.Element, keys ...string) string {
	for _, k := range keys {
		if v := el.SelectAttrValue(k, ""); v != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
