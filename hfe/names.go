package hfe

import "fmt"

// ParseEncoding maps a configuration name to a track-encoding tag.
func ParseEncoding(name string) (uint8, error) {
	switch name {
	case "isoibm-mfm":
		return ENC_ISOIBM_MFM, nil
	case "amiga-mfm":
		return ENC_Amiga_MFM, nil
	case "isoibm-fm":
		return ENC_ISOIBM_FM, nil
	case "emu-fm":
		return ENC_Emu_FM, nil
	default:
		return ENC_Unknown, fmt.Errorf("unknown track encoding %q", name)
	}
}

// ParseInterfaceMode maps a configuration name to an interface-mode tag.
func ParseInterfaceMode(name string) (uint8, error) {
	switch name {
	case "ibmpc-dd":
		return IFM_IBMPC_DD, nil
	case "ibmpc-hd":
		return IFM_IBMPC_HD, nil
	case "atarist-dd":
		return IFM_AtariST_DD, nil
	case "atarist-hd":
		return IFM_AtariST_HD, nil
	case "amiga-dd":
		return IFM_Amiga_DD, nil
	case "amiga-hd":
		return IFM_Amiga_HD, nil
	case "cpc-dd":
		return IFM_CPC_DD, nil
	case "shugart-dd":
		return IFM_GenericShugart_DD, nil
	case "ibmpc-ed":
		return IFM_IBMPC_ED, nil
	case "msx2-dd":
		return IFM_MSX2_DD, nil
	case "c64-dd":
		return IFM_C64_DD, nil
	case "emu-shugart-dd":
		return IFM_EmuShugart_DD, nil
	default:
		return 0, fmt.Errorf("unknown interface mode %q", name)
	}
}
