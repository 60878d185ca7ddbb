package payment

import "strings"

// Payment methods offered at checkout.
const (
	MethodSnap     = "Midtrans"
	MethodTransfer = "Transfer Bank"
	MethodQRIS     = "QRIS"
	MethodCOD      = "COD"
)

var InstructionMap = map[string][]string{
	MethodSnap: {
		"Klik tombol Bayar Sekarang untuk membuka halaman pembayaran",
		"Pilih metode pembayaran yang tersedia (VA, e-wallet, kartu kredit)",
		"Selesaikan pembayaran sebesar {{amount}} sebelum batas waktu",
	},
	MethodTransfer: {
		"Transfer sebesar {{amount}} ke rekening yang tertera",
		"Cantumkan {{order_ref}} pada berita transfer",
		"Unggah bukti transfer di halaman ini",
	},
	MethodQRIS: {
		"Buka aplikasi e-wallet atau mobile banking yang mendukung QRIS",
		"Pindai kode QR yang ditampilkan",
		"Periksa nominal pembayaran {{amount}}",
		"Unggah bukti pembayaran di halaman ini",
	},
	MethodCOD: {
		"Siapkan uang tunai sebesar {{amount}} saat kurir tiba",
		"Lakukan pembayaran langsung kepada kurir",
	},
}

func GetInstructions(method string) []string {
	if steps, ok := InstructionMap[method]; ok {
		return steps
	}

	return []string{
		"Ikuti instruksi pembayaran yang tersedia pada halaman ini",
	}
}

type InstructionVars map[string]string

func InjectVariables(steps []string, vars InstructionVars) []string {
	result := make([]string, 0, len(steps))

	for _, step := range steps {
		updated := step
		for key, value := range vars {
			updated = strings.ReplaceAll(updated, "{{"+key+"}}", value)
		}
		result = append(result, updated)
	}

	return result
}
