//go:build !protogen

package agentcfg

func NewProvider(_ string) (Provider, error) {
	return nil, nil
}
