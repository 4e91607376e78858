package payload

// SampleInput is a ready-made input of three transfer/step pairs, offered by
// the form's "Load sample" button and by `converter build --sample`.
const SampleInput = "IC-795c1bf6-6141-457e-a284-69900c862bcc 1e33e4ab-cdc2-486a-b393-512bc60bbf24\n" +
	"IC-78c9592e-0bff-4c20-bda7-df0411314dca 1faa1411-a282-4179-9f45-5450bf427bd1\n" +
	"IC-b1a3944a-c450-4d67-97f3-7b2c06dfdb2e 9283df5c-47d9-4283-a7fb-1c7f1b511a17"
